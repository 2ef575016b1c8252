package http

import (
	"github.com/gin-gonic/gin"

	"push-to-memory/internal/reflection"
	"push-to-memory/pkg/log"
)

// Handler is the public interface for the reflection HTTP delivery layer.
type Handler interface {
	List(c *gin.Context)
	Detail(c *gin.Context)
	Update(c *gin.Context)
	Summarize(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc reflection.UseCase
}

// New creates a new HTTP handler for the reflection domain.
func New(l log.Logger, uc reflection.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
