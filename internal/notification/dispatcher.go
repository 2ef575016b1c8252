package notification

import (
	"context"
	"sync"
	"time"

	"push-to-memory/pkg/log"
)

const DefaultTimeout = 5 * time.Second

type dispatcher struct {
	sender  Sender
	timeout time.Duration
	l       log.Logger
	wg      sync.WaitGroup
}

// NewDispatcher wraps sender. Each notification gets one attempt bounded by timeout.
func NewDispatcher(sender Sender, timeout time.Duration, l log.Logger) Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &dispatcher{sender: sender, timeout: timeout, l: l}
}

// Notify returns immediately. Failures are logged and dropped.
func (d *dispatcher) Notify(ownerUserID, repositoryName, recordID string) {
	msg := NewChangesMessage(ownerUserID, repositoryName, recordID)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, msg); err != nil {
			d.l.Warnf(ctx, "notification for reflection %s not delivered: %v", recordID, err)
			return
		}
		d.l.Debugf(ctx, "notification for reflection %s delivered", recordID)
	}()
}

func (d *dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
