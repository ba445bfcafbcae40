package core

import "time"

// SystemNick is the reserved nickname for server-generated chat entries
// (join/leave notices). Clients render these distinctly from user messages.
const SystemNick = "System"

// ChatHistoryLimit caps the number of chat entries a room retains.
const ChatHistoryLimit = 100

// ChatMessage is the domain model for a chat entry.
type ChatMessage struct {
	Nick   string
	Text   string
	SentAt time.Time
}

// User describes a room member as exposed in membership broadcasts.
type User struct {
	Nick      string
	SessionID string
}

// Video identifies the video currently playing in a room.
type Video struct {
	ID    string
	Title string
}

// Snapshot is the room state replayed to a newly joined member for catch-up.
// Playback position is deliberately absent: only the last started video is
// remembered, so late joiners start from the beginning.
type Snapshot struct {
	CurrentVideo *Video
	BrowseURL    string
	ChatHistory  []ChatMessage
}
