package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"push-to-memory/config"
	_ "push-to-memory/docs" // Swagger docs
	"push-to-memory/internal/httpserver"
	"push-to-memory/internal/middleware"
	"push-to-memory/internal/notification"
	reflectionHTTP "push-to-memory/internal/reflection/delivery/http"
	reflectionUC "push-to-memory/internal/reflection/usecase"
	registrationHTTP "push-to-memory/internal/registration/delivery/http"
	registrationUC "push-to-memory/internal/registration/usecase"
	"push-to-memory/internal/webhook"
	"push-to-memory/pkg/gemini"
	pkgGithub "push-to-memory/pkg/github"
	"push-to-memory/pkg/log"
	"push-to-memory/pkg/scope"
)

const webhookPath = "/api/webhook"

// @title       Push to Memory API
// @description Turns GitHub pushes into pending reflection records and lets their owner write, skip and summarise them.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Push to Memory...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Storage driver: %s", cfg.Storage.Driver)

	// 3. Infrastructure
	infra, err := connectInfra(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage: ", err)
		return
	}
	defer infra.close(context.Background())

	// 4. External clients
	githubClient, err := pkgGithub.New(pkgGithub.Config{
		APIURL:  cfg.GitHub.APIURL,
		Timeout: cfg.GitHub.Timeout,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize GitHub client: ", err)
		return
	}

	var geminiClient gemini.IGemini
	if cfg.Gemini.APIKey != "" {
		geminiClient, err = gemini.New(gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
			APIURL: cfg.Gemini.APIURL,
		})
		if err != nil {
			logger.Error(ctx, "Failed to initialize Gemini client: ", err)
			return
		}
		logger.Infof(ctx, "Gemini summaries enabled (model %s)", geminiClient.Model())
	} else {
		logger.Warn(ctx, "GEMINI_API_KEY is missing, reflection summaries are disabled")
	}

	// 5. Notifications
	var sender notification.Sender
	switch cfg.Notification.Transport {
	case notification.TransportHTTP:
		sender = notification.NewHTTPSender(cfg.Notification.URL, cfg.Notification.APIKey, &http.Client{Timeout: cfg.Notification.Timeout})
	case notification.TransportNATS:
		sender = notification.NewNATSSender(infra.nats.Conn, cfg.NATS.NotificationSubject)
	default:
		sender = notification.NewLogSender(logger)
	}
	dispatcher := notification.NewDispatcher(sender, cfg.Notification.Timeout, logger)
	logger.Infof(ctx, "Notification transport: %s", cfg.Notification.Transport)

	// 6. Public webhook address: explicit config or ngrok tunnel
	callbackURL := ""
	if cfg.App.PublicURL != "" {
		callbackURL = cfg.App.PublicURL + webhookPath
	} else if cfg.App.NgrokAPIURL != "" {
		ngrokURL, ngrokErr := detectNgrokURL(ctx, cfg.App.NgrokAPIURL)
		if ngrokErr != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
		} else {
			callbackURL = ngrokURL + webhookPath
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", callbackURL)
		}
	}
	if callbackURL == "" {
		logger.Warn(ctx, "PUBLIC_URL is not set, new webhook registrations will be refused")
	}

	// 7. Domains
	regUC := registrationUC.New(infra.registrations, githubClient, callbackURL, logger)
	refUC := reflectionUC.New(infra.reflections, geminiClient, logger)

	webhookHandler := webhook.NewHandler(regUC, refUC, dispatcher, webhook.SecurityConfig{
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, logger)

	mw := middleware.New(logger, scope.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:              logger,
		Port:                cfg.HTTPServer.Port,
		Mode:                cfg.HTTPServer.Mode,
		Environment:         cfg.Environment.Name,
		Middleware:          mw,
		Pingers:             infra.pingers,
		WebhookHandler:      webhookHandler,
		RegistrationHandler: registrationHTTP.New(logger, regUC),
		ReflectionHandler:   reflectionHTTP.New(logger, refUC),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}

	waitCtx, cancel := context.WithTimeout(context.Background(), cfg.Notification.Timeout)
	defer cancel()
	if err := dispatcher.Wait(waitCtx); err != nil {
		logger.Warnf(context.Background(), "Notifications still in flight at shutdown: %v", err)
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}
