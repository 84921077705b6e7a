// Package app wires configuration, logging, observability, services,
// transports and the HTTP server into a runnable dashboard application.
package app
