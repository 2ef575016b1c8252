package notification

import "context"

// Sender delivers one message. Implementations must honour ctx cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fires notifications without blocking the caller.
type Dispatcher interface {
	Notify(ownerUserID, repositoryName, recordID string)
	// Wait blocks until in-flight notifications finish or ctx is done.
	Wait(ctx context.Context) error
}
