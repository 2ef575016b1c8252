package nats

import (
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"push-to-memory/internal/registration/repository"
	"push-to-memory/pkg/log"
)

type implRepository struct {
	kv jetstream.KeyValue
	l  log.Logger
}

// New creates a Repository backed by a JetStream key-value bucket.
// Values are JSON documents keyed by registration ID.
func New(kv jetstream.KeyValue, l log.Logger) repository.Repository {
	if kv == nil {
		panic("registration/repository/nats: kv is required")
	}
	return &implRepository{kv: kv, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("registration/repository/nats.%s", method)
}
