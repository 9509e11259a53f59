// Package delivery defines the contract every transport-level server of the
// application fulfills.
package delivery

import "context"

// Delivery is a long-running request-serving component started by main.
type Delivery interface {
	// Serve blocks, accepting requests until the context is cancelled or
	// the listener fails.
	Serve(ctx context.Context) error
}
