// Package notify delivers non-blocking user messages raised by the use
// cases.
package notify

import (
	"context"
	"log/slog"

	"transportation/internal/core/ports"
)

var _ ports.Notifier = (*SlogNotifier)(nil)

// SlogNotifier writes each message as a warning record.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger.With("component", "notifier")}
}

func (n *SlogNotifier) Warn(ctx context.Context, title, message string) {
	n.logger.WarnContext(ctx, message, "title", title)
}
