package http

import (
	"github.com/gin-gonic/gin"

	"push-to-memory/internal/middleware"
)

// RegisterRoutes maps /reflections to the handler. Every route requires an owner token.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	refl := rg.Group("/reflections", mw.Auth())
	{
		refl.GET("", h.List)
		refl.POST("/summary", h.Summarize)
		refl.GET("/:id", h.Detail)
		refl.PUT("/:id", h.Update)
	}
}
