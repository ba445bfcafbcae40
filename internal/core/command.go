package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom binds the session to a room and replays its snapshot.
	CommandJoinRoom CommandKind = iota
	// CommandSetVideo starts a video for the whole room.
	CommandSetVideo
	// CommandPlaybackState relays a play/pause/seek without storing it.
	CommandPlaybackState
	// CommandShareSearch shares search results with the room.
	CommandShareSearch
	// CommandSetBrowseURL shares a co-browsing target with the room.
	CommandSetBrowseURL
	// CommandPostChat posts a chat message.
	CommandPostChat
	// CommandCallInitiate forwards a call offer to another session.
	CommandCallInitiate
	// CommandCallAccept forwards a call answer back to the initiator.
	CommandCallAccept
	// CommandCallEnd notifies the counterparty that the call is over.
	CommandCallEnd
)

// Playback carries a relayed playback state change.
type Playback struct {
	Action string
	Time   float64
}

// SearchShare carries shared search results. Results are opaque to the core.
type SearchShare struct {
	Kind    string
	Query   string
	Results json.RawMessage
}

// CallSignal addresses an opaque signaling blob to another session.
type CallSignal struct {
	To     string
	Signal json.RawMessage
}

// Command represents an action requested by a client session.
type Command struct {
	Kind     CommandKind
	Room     string // join only
	Nick     string // join only
	Video    Video
	Playback Playback
	Search   SearchShare
	URL      string
	Text     string
	Call     CallSignal
}
