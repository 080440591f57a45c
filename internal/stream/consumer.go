package stream

import "context"

// Consumer pulls prediction requests off a message stream and runs them
// through the predictor. Implementations block in Start until the context is
// cancelled.
type Consumer interface {
	// Setup prepares broker-side state (consumer groups etc.) and is safe
	// to call more than once.
	Setup(ctx context.Context) error

	// Start consumes messages until ctx is done.
	Start(ctx context.Context) error

	// Close releases the broker connection.
	Close() error
}
