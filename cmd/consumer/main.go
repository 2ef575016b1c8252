package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"push-to-memory/config"
	natsConfig "push-to-memory/config/nats"
	"push-to-memory/internal/notification"
	"push-to-memory/pkg/log"
)

const queueGroup = "ptm-notification-relay"

// main relays notifications published on NATS by the API to the push notification service.
//
// Pattern:
//  1. Initialize infra (same as cmd/api/main.go)
//  2. Subscribe to the notification subject in a queue group
//  3. Forward each message through the HTTP sender
//  4. Drain on shutdown
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting notification relay...")

	if cfg.NATS.URL == "" {
		logger.Error(ctx, "NATS_URL is required for the notification relay")
		return
	}
	if cfg.Notification.URL == "" {
		logger.Error(ctx, "notification.url is required for the notification relay")
		return
	}

	client, err := natsConfig.Connect(ctx, natsConfig.Config{URL: cfg.NATS.URL})
	if err != nil {
		logger.Error(ctx, "Failed to connect to NATS: ", err)
		return
	}
	defer client.Disconnect()

	sender := notification.NewHTTPSender(cfg.Notification.URL, cfg.Notification.APIKey, &http.Client{Timeout: cfg.Notification.Timeout})
	relay := newRelay(sender, cfg.Notification.Timeout, logger)

	sub, err := client.Conn.QueueSubscribe(cfg.NATS.NotificationSubject, queueGroup, func(m *nats.Msg) {
		relay.handle(ctx, m.Data)
	})
	if err != nil {
		logger.Error(ctx, "Failed to subscribe: ", err)
		return
	}
	logger.Infof(ctx, "Relaying %s to %s", cfg.NATS.NotificationSubject, cfg.Notification.URL)

	<-ctx.Done()

	logger.Info(context.Background(), "Shutting down relay...")
	if err := sub.Drain(); err != nil {
		logger.Warnf(context.Background(), "Failed to drain subscription: %v", err)
	}
	logger.Info(context.Background(), "Relay stopped gracefully")
}

type relay struct {
	sender  notification.Sender
	timeout time.Duration
	l       log.Logger
}

func newRelay(sender notification.Sender, timeout time.Duration, l log.Logger) *relay {
	if timeout <= 0 {
		timeout = notification.DefaultTimeout
	}
	return &relay{sender: sender, timeout: timeout, l: l}
}

func (r *relay) handle(ctx context.Context, data []byte) {
	var msg notification.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		r.l.Warnf(ctx, "relay: dropping malformed message: %v", err)
		return
	}
	sendCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.sender.Send(sendCtx, msg); err != nil {
		r.l.Warnf(ctx, "relay: send to user %s: %v", msg.UserID, err)
		return
	}
	r.l.Debugf(ctx, "relay: delivered %q to user %s", msg.Title, msg.UserID)
}
