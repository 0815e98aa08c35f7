// Package lifecycle holds shared constants for component start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of infrastructure
// components such as the HTTP server and the session store.
const DefaultTimeout = 10 * time.Second
