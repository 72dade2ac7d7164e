// Package timeouts holds the HTTP server durations shared by entry points.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown bounds graceful shutdown of in-flight requests.
const Shutdown = 5 * time.Second

// SessionSweep is the default interval between expired-session sweeps.
const SessionSweep = 10 * time.Minute
