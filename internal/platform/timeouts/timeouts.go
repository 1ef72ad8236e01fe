// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// SheetFetch caps one content fetch from the sheet endpoint.
const SheetFetch = 10 * time.Second

// HealthCheck caps a single gRPC health probe.
const HealthCheck = time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
