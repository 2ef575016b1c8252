package notification

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is the part of *nats.Conn the NATS sender needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type natsSender struct {
	pub     Publisher
	subject string
}

// NewNATSSender publishes messages as JSON on subject. cmd/consumer relays them to the HTTP service.
func NewNATSSender(pub Publisher, subject string) Sender {
	return &natsSender{pub: pub, subject: subject}
}

func (s *natsSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notification: marshal: %w", err)
	}
	if err := s.pub.Publish(s.subject, data); err != nil {
		return fmt.Errorf("notification: publish %s: %w", s.subject, err)
	}
	return nil
}
