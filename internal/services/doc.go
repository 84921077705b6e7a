// Package services holds the application services sitting between the
// HTTP transport and the data layers: the data service owning the
// in-memory normalized table, and the health service reporting liveness
// and readiness.
package services
