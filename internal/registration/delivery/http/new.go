package http

import (
	"github.com/gin-gonic/gin"

	"push-to-memory/internal/registration"
	"push-to-memory/pkg/log"
)

// Handler is the public interface for the registration HTTP delivery layer.
type Handler interface {
	Create(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
	ListSources(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc registration.UseCase
}

// New creates a new HTTP handler for the registration domain.
func New(l log.Logger, uc registration.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
