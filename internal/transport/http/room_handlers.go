package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/core"
)

// RoomHandlers provides HTTP handlers for room registry endpoints.
type RoomHandlers struct {
	registry *core.Registry
	log      *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(registry *core.Registry, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		registry: registry,
		log:      logger,
	}
}

// CreateRoomResponse represents the create room response body.
type CreateRoomResponse struct {
	RoomID string `json:"roomId"`
}

// CheckRoomResponse represents the check room response body.
type CheckRoomResponse struct {
	Exists bool `json:"exists"`
}

// CreateRoom registers a fresh room and returns its shareable code.
// GET /api/create-room
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	roomID, _ := h.registry.CreateRoom()
	c.JSON(http.StatusOK, CreateRoomResponse{RoomID: roomID})
}

// CheckRoom reports whether a room code exists. Lookup is case-insensitive.
// GET /api/check-room/:roomId
func (h *RoomHandlers) CheckRoom(c *gin.Context) {
	roomID := c.Param("roomId")
	c.JSON(http.StatusOK, CheckRoomResponse{Exists: h.registry.Exists(roomID)})
}
