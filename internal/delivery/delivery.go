// Package delivery defines the contract every transport entrypoint
// (HTTP, worker, etc.) must satisfy so main can run them uniformly.
package delivery

import "context"

// Delivery is a long-running transport server.
type Delivery interface {
	// Serve blocks until the server stops or the context is cancelled.
	Serve(ctx context.Context) error
}
