package webhook

import (
	"push-to-memory/internal/notification"
	"push-to-memory/internal/reflection"
	"push-to-memory/internal/registration"
	pkgLog "push-to-memory/pkg/log"
)

type Handler struct {
	registrationUC registration.UseCase
	reflectionUC   reflection.UseCase
	dispatcher     notification.Dispatcher
	security       *SecurityValidator
	l              pkgLog.Logger
}

func NewHandler(
	registrationUC registration.UseCase,
	reflectionUC reflection.UseCase,
	dispatcher notification.Dispatcher,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		registrationUC: registrationUC,
		reflectionUC:   reflectionUC,
		dispatcher:     dispatcher,
		security:       NewSecurityValidator(securityConfig),
		l:              l,
	}
}
