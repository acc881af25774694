// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
//
// One Run is one aggregation pass: load the host bootstrap, discover bundles,
// aggregate, export the result and, when a port is configured, serve queries
// against it until the context is cancelled.
package app
