package httpserver

import (
	"context"

	reflectionHTTP "push-to-memory/internal/reflection/delivery/http"
	registrationHTTP "push-to-memory/internal/registration/delivery/http"
)

// registerDomainRoutes mounts the GitHub receiver and the owner API under /api/v1.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	srv.gin.POST("/api/webhook", srv.webhookHandler.HandleGitHubWebhook)
	srv.l.Infof(ctx, "GitHub webhook route registered at POST /api/webhook")

	api := srv.gin.Group("/api/v1")

	if srv.registrationHandler != nil {
		registrationHTTP.RegisterRoutes(api, srv.registrationHandler, srv.mw)
		srv.l.Infof(ctx, "Registration routes registered at /api/v1/registrations")
	} else {
		srv.l.Infof(ctx, "Registration handler not configured, skipping routes")
	}

	if srv.reflectionHandler != nil {
		reflectionHTTP.RegisterRoutes(api, srv.reflectionHandler, srv.mw)
		srv.l.Infof(ctx, "Reflection routes registered at /api/v1/reflections")
	} else {
		srv.l.Infof(ctx, "Reflection handler not configured, skipping routes")
	}

	return nil
}
