package utils

import (
	"strings"

	"github.com/google/uuid"
)

// RoomCodeLength is the length of generated room codes.
const RoomCodeLength = 8

// NewSessionID returns a unique identifier for a transport session.
func NewSessionID() string {
	return uuid.NewString()
}

// NewRoomCode returns a short, human-shareable room code: the first eight
// hex characters of a UUID, uppercased.
func NewRoomCode() string {
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(code[:RoomCodeLength])
}
