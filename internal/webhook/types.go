package webhook

import (
	"errors"

	"push-to-memory/internal/reflection"
	"push-to-memory/internal/registration"
)

const (
	HeaderEvent     = "X-GitHub-Event"
	HeaderSignature = "X-Hub-Signature-256"
	HeaderDelivery  = "X-GitHub-Delivery"

	// maxPayloadBytes is GitHub's documented cap on webhook payloads.
	maxPayloadBytes = 25 << 20
)

var ErrMalformedPayload = errors.New("malformed webhook payload")

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max deliveries per minute per source, 0 disables
}

// Sources are the registration candidates named by a payload. Either may be the zero value.
type Sources struct {
	Organization registration.Source
	Repository   registration.Source
}

// Event is one of PingEvent, PushEvent or UnknownEvent.
type Event interface {
	eventType() string
}

type PingEvent struct {
	HookID int64
	Zen    string
}

// PushEvent carries the commits of a push in push order.
type PushEvent struct {
	RepositoryName string
	Commits        []reflection.Commit
}

// UnknownEvent is any delivery the service acknowledges without acting on.
type UnknownEvent struct {
	Type string
}

func (PingEvent) eventType() string      { return "ping" }
func (PushEvent) eventType() string      { return "push" }
func (e UnknownEvent) eventType() string { return e.Type }
