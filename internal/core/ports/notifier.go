package ports

import "context"

// Notifier delivers non-blocking informational messages, such as stop
// mismatch warnings raised while saving a trip.
type Notifier interface {
	Warn(ctx context.Context, title, message string)
}
