package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"push-to-memory/internal/model"
	"push-to-memory/pkg/response"
)

const bearerPrefix = "Bearer "

// Auth requires a valid owner token and stores the resulting Scope in the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c)
			return
		}

		payload, err := m.jwtManager.Verify(token)
		if err != nil {
			m.l.Warnf(ctx, "middleware.Auth: %v", err)
			response.Unauthorized(c)
			return
		}

		ctx = model.SetScopeToContext(ctx, model.Scope{UserID: payload.UserID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}
