package http

import (
	"github.com/gin-gonic/gin"

	"push-to-memory/internal/middleware"
)

// RegisterRoutes maps /registrations to the handler. Every route requires an owner token.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	regs := rg.Group("/registrations", mw.Auth())
	{
		regs.POST("", h.Create)
		regs.DELETE("", h.Delete)
		regs.GET("", h.List)
		regs.POST("/sources", h.ListSources)
	}
}
