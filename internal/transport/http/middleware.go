package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/auth"
)

// AccessMiddleware validates access tokens when the passphrase gate is
// enabled. Tokens arrive as "Bearer <token>" or, for websocket dials where
// headers are awkward, as a "token" query parameter.
func AccessMiddleware(authService *auth.Service, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			logger.Debug().Str("path", c.Request.URL.Path).Msg("missing access token")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing access token"})
			c.Abort()
			return
		}

		if err := authService.ValidateToken(token); err != nil {
			logger.Debug().Err(err).Msg("invalid access token")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid access token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
