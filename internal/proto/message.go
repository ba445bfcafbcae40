package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoinRoom      = "join-room"
	InboundTypeVideoPlay     = "youtube-play"
	InboundTypeVideoState    = "youtube-state"
	InboundTypeSearchResults = "search-results"
	InboundTypeBrowseURL     = "browse-url"
	InboundTypeChatMessage   = "chat-message"
	InboundTypeCallInitiate  = "call-initiate"
	InboundTypeCallAccept    = "call-accept"
	InboundTypeCallEnd       = "call-end"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventRoomState     = "room-state"
	EventUserList      = "user-list"
	EventChatMessage   = "chat-message"
	EventVideoPlay     = "youtube-play"
	EventVideoState    = "youtube-state"
	EventSearchResults = "search-results"
	EventBrowseURL     = "browse-url"
	EventCallIncoming  = "call-incoming"
	EventCallAccepted  = "call-accepted"
	EventCallEnded     = "call-ended"
)

// JoinRoomData binds the connection to a room.
type JoinRoomData struct {
	RoomID string `json:"roomId"`
	Nick   string `json:"nick,omitempty"`
}

// VideoPlayData starts a video for the room.
type VideoPlayData struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

// VideoStateData relays a play/pause/seek.
type VideoStateData struct {
	Action string  `json:"action"`
	Time   float64 `json:"time"`
}

// SearchResultsData shares search results with the room. Results are an
// opaque payload the server forwards untouched.
type SearchResultsData struct {
	Kind    string          `json:"kind"`
	Query   string          `json:"query"`
	Results json.RawMessage `json:"results"`
}

// BrowseURLData shares a co-browsing target.
type BrowseURLData struct {
	URL string `json:"url"`
}

// ChatMessageData is a chat message from the client.
type ChatMessageData struct {
	Text string `json:"text"`
}

// CallSignalData addresses an opaque signaling blob to another session.
type CallSignalData struct {
	To     string          `json:"to,omitempty"`
	Signal json.RawMessage `json:"signal,omitempty"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// VideoInfo describes the room's now-playing video.
type VideoInfo struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

// ChatEntry is one chat history entry.
type ChatEntry struct {
	Nick string `json:"nick"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// RoomStateData is the catch-up snapshot delivered on join.
type RoomStateData struct {
	CurrentVideo *VideoInfo  `json:"currentVideo"`
	BrowseURL    string      `json:"browseUrl"`
	ChatHistory  []ChatEntry `json:"chatHistory"`
}

// UserInfo is one entry in a membership broadcast.
type UserInfo struct {
	Nick      string `json:"nick"`
	SessionID string `json:"id"`
}

// VideoPlayEvent tells other members which video was started.
type VideoPlayEvent struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	StartedBy string `json:"startedBy"`
}

// VideoStateEvent relays a play/pause/seek to other members.
type VideoStateEvent struct {
	Action string  `json:"action"`
	Time   float64 `json:"time"`
	From   string  `json:"from"`
}

// SearchResultsEvent relays shared search results.
type SearchResultsEvent struct {
	Kind       string          `json:"kind"`
	Query      string          `json:"query"`
	Results    json.RawMessage `json:"results"`
	SearchedBy string          `json:"searchedBy"`
}

// BrowseURLEvent relays the shared co-browsing target.
type BrowseURLEvent struct {
	URL      string `json:"url"`
	SharedBy string `json:"sharedBy"`
}

// CallSignalEvent carries an opaque signaling blob between two sessions.
type CallSignalEvent struct {
	From     string          `json:"from"`
	FromNick string          `json:"fromNick,omitempty"`
	Signal   json.RawMessage `json:"signal,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
