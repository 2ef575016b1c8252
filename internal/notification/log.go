package notification

import (
	"context"

	"push-to-memory/pkg/log"
)

type logSender struct {
	l log.Logger
}

// NewLogSender only logs. Used when no notification transport is configured.
func NewLogSender(l log.Logger) Sender {
	return &logSender{l: l}
}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	s.l.Infof(ctx, "notification (not sent) for user %s: %s", msg.UserID, msg.URL)
	return nil
}
