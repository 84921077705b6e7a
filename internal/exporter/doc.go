// Package exporter writes filtered observation subsets out as CSV or
// Excel downloads.
package exporter
