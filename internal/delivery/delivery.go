// Package delivery defines the contract every transport server fulfils.
package delivery

import "context"

// Delivery is a transport endpoint (HTTP, gRPC, worker) managed by the
// application lifecycle.
type Delivery interface {
	// Serve blocks serving requests until the server is shut down.
	Serve(ctx context.Context) error
}
