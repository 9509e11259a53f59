// Package lifecycle holds shared timeouts for Fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long a single lifecycle hook may take to
// start or stop a component before the application gives up on it.
const DefaultTimeout = 10 * time.Second
