// Package lifecycle holds shared constants for component start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of infrastructure
// components (HTTP server, database, keyed store).
const DefaultTimeout = 10 * time.Second
