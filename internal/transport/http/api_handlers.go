package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/auth"
)

// AccessHandlers provides the passphrase-for-token exchange.
type AccessHandlers struct {
	authService *auth.Service
	log         *zerolog.Logger
}

// NewAccessHandlers creates a new access handlers instance.
func NewAccessHandlers(authService *auth.Service, logger *zerolog.Logger) *AccessHandlers {
	return &AccessHandlers{
		authService: authService,
		log:         logger,
	}
}

// AccessRequest represents the access request body.
type AccessRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

// AccessResponse represents the access response body.
type AccessResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Access exchanges the shared passphrase for an access token.
// POST /api/access
func (h *AccessHandlers) Access(c *gin.Context) {
	if !h.authService.Enabled() {
		c.JSON(http.StatusOK, AccessResponse{})
		return
	}

	var req AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid access request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Access(req.Passphrase)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPassphrase) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid passphrase"})
			return
		}
		h.log.Error().Err(err).Msg("failed to issue access token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AccessResponse{Token: token})
}
