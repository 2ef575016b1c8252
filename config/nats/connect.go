package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	clientName    = "push-to-memory"
	connTimeout   = 5 * time.Second
	reconnectWait = 2 * time.Second
	maxReconnects = 10
)

// Config holds the NATS connection settings.
type Config struct {
	URL string
}

// Client bundles the core connection and its JetStream context.
type Client struct {
	Conn      *nats.Conn
	JetStream jetstream.JetStream
}

// Connect dials NATS and opens a JetStream context.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("nats: url is required")
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(clientName),
		nats.Timeout(connTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats: jetstream: %w", err)
	}

	return &Client{Conn: nc, JetStream: js}, nil
}

// KeyValue returns the bucket, creating it on first use.
func (c *Client) KeyValue(ctx context.Context, bucket string) (jetstream.KeyValue, error) {
	kv, err := c.JetStream.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  bucket,
		History: 5,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("nats: key value %s: %w", bucket, err)
	}
	return kv, nil
}

// Ping reports whether the connection is usable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.Conn == nil {
		return errors.New("nats: not connected")
	}
	if !c.Conn.IsConnected() || c.Conn.IsDraining() {
		return fmt.Errorf("nats: connection not ready (%s)", c.Conn.Status())
	}
	return nil
}

// Disconnect drains pending publishes before closing.
func (c *Client) Disconnect() {
	if c == nil || c.Conn == nil {
		return
	}
	if err := c.Conn.Drain(); err != nil {
		c.Conn.Close()
	}
}
