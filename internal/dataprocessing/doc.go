// Package dataprocessing turns the raw wide-format ZHVI CSV (one row per
// region, one column per month) into a normalized long-format table (one
// row per region+date), and provides the pure filter and analytics
// routines the dashboard is built on.
package dataprocessing
