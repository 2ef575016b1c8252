package nats

import (
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"push-to-memory/internal/reflection/repository"
	"push-to-memory/pkg/log"
)

// updateAttempts bounds the compare-and-swap loop of UpdateReflection.
const updateAttempts = 5

type implRepository struct {
	kv jetstream.KeyValue
	l  log.Logger
}

// New creates a Repository backed by a JetStream key-value bucket.
func New(kv jetstream.KeyValue, l log.Logger) repository.Repository {
	if kv == nil {
		panic("reflection/repository/nats: kv is required")
	}
	return &implRepository{kv: kv, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("reflection/repository/nats.%s", method)
}
