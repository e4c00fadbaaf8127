// Package lifecycle holds process-wide startup and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks such as DB pings and HTTP shutdown.
const DefaultTimeout = 10 * time.Second
