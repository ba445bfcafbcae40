package core

import "encoding/json"

// EventKind is a notification the core emits to sessions.
type EventKind int

const (
	// EventRoomState delivers the catch-up snapshot to a joining session.
	EventRoomState EventKind = iota
	// EventUserList delivers the full member list after a join or leave.
	EventUserList
	// EventChatMessage delivers a chat entry (user or system authored).
	EventChatMessage
	// EventVideoStarted tells other members which video was started.
	EventVideoStarted
	// EventPlaybackState relays a play/pause/seek to other members.
	EventPlaybackState
	// EventSearchResults relays shared search results to other members.
	EventSearchResults
	// EventBrowseURL relays the shared co-browsing target.
	EventBrowseURL

	// Call signaling events. Payloads are opaque to the server.
	EventCallIncoming
	EventCallAccepted
	EventCallEnded

	// EventError notifies a session about a domain error.
	EventError
)

// VideoStart tags a started video with who started it.
type VideoStart struct {
	Video     Video
	StartedBy string
}

// PlaybackUpdate is a relayed playback state change.
type PlaybackUpdate struct {
	Action string
	Time   float64
	From   string
}

// SearchBroadcast is a relayed set of search results.
type SearchBroadcast struct {
	Kind       string
	Query      string
	Results    json.RawMessage
	SearchedBy string
}

// BrowseUpdate is a relayed co-browsing target.
type BrowseUpdate struct {
	URL      string
	SharedBy string
}

// CallSignalEvent carries an opaque signaling blob between two sessions.
type CallSignalEvent struct {
	From     string
	FromNick string
	Signal   json.RawMessage
}

// Event is sent to sessions to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	Snapshot *Snapshot
	Users    []User
	Message  *ChatMessage
	Video    *VideoStart
	Playback *PlaybackUpdate
	Search   *SearchBroadcast
	Browse   *BrowseUpdate
	Call     *CallSignalEvent
	Error    *CoreError
}
