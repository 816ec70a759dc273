// Package daemon hosts the long-running presentcoach server.
//
// It binds the HTTP API to the configured address, holds a flock-based lock
// so only one server owns the report database, fails runs left processing by
// a previous process, and drains in-flight analyses on shutdown.
package daemon
