// Package http contains the chi HTTP handlers exposing the dashboard API:
// observation queries, region lists, snapshots, year-over-year series,
// exports, dataset refresh, health and metrics.
package http
