package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"push-to-memory/internal/middleware"
	reflectionHTTP "push-to-memory/internal/reflection/delivery/http"
	registrationHTTP "push-to-memory/internal/registration/delivery/http"
	"push-to-memory/pkg/log"
)

// Pinger reports whether a backing store can serve traffic.
type Pinger func(ctx context.Context) error

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	mw      middleware.Middleware
	pingers map[string]Pinger

	// GitHub deliveries
	webhookHandler interface {
		HandleGitHubWebhook(c *gin.Context)
	}

	// Owner API
	registrationHandler registrationHTTP.Handler
	reflectionHandler   reflectionHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	Middleware middleware.Middleware
	// Pingers are checked by /ready, keyed by the name reported on failure.
	Pingers map[string]Pinger

	WebhookHandler interface {
		HandleGitHubWebhook(c *gin.Context)
	}
	RegistrationHandler registrationHTTP.Handler
	ReflectionHandler   reflectionHTTP.Handler
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                   logger,
		gin:                 gin.New(),
		port:                cfg.Port,
		mode:                cfg.Mode,
		environment:         cfg.Environment,
		mw:                  cfg.Middleware,
		pingers:             cfg.Pingers,
		webhookHandler:      cfg.WebhookHandler,
		registrationHandler: cfg.RegistrationHandler,
		reflectionHandler:   cfg.ReflectionHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Handler exposes the configured engine.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.webhookHandler == nil {
		return errors.New("webhook handler is required")
	}
	return nil
}
