package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Room is the authoritative state machine for one room: membership, the
// now-playing video, the last browsed URL and a bounded chat history.
// All mutations happen on the hub goroutine; operations are synchronous,
// in-memory and never block.
type Room struct {
	Code string

	members      map[string]*Session // session id -> session
	joinOrder    []string            // display order only
	currentVideo *Video
	browseURL    string
	chatHistory  []ChatMessage
}

// NewRoom constructs a blank room.
func NewRoom(code string) *Room {
	return &Room{
		Code:    code,
		members: make(map[string]*Session),
	}
}

// Join registers the session as a member and returns the catch-up snapshot
// plus the system message to broadcast. The snapshot is taken before the
// notice is appended: the joiner gets their own notice as a chat broadcast,
// never replayed in the history too.
func (r *Room) Join(s *Session, nick string) (Snapshot, ChatMessage) {
	if _, exists := r.members[s.ID]; !exists {
		r.joinOrder = append(r.joinOrder, s.ID)
	}
	r.members[s.ID] = s
	s.Nick = nick

	snapshot := r.snapshot()
	sys := r.appendChat(ChatMessage{
		Nick:   SystemNick,
		Text:   fmt.Sprintf("%s joined the room", nick),
		SentAt: time.Now(),
	})
	return snapshot, sys
}

// Leave removes the member and returns the system message plus the updated
// member list. Unknown sessions are a no-op (ok=false).
func (r *Room) Leave(sessionID string) (ChatMessage, []User, bool) {
	s, exists := r.members[sessionID]
	if !exists {
		return ChatMessage{}, nil, false
	}
	delete(r.members, sessionID)
	for i, id := range r.joinOrder {
		if id == sessionID {
			r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
			break
		}
	}

	sys := r.appendChat(ChatMessage{
		Nick:   SystemNick,
		Text:   fmt.Sprintf("%s left the room", s.Nick),
		SentAt: time.Now(),
	})
	return sys, r.Users(), true
}

// SetVideo overwrites the now-playing video. Last write wins; the video id
// is passed through unvalidated.
func (r *Room) SetVideo(v Video, actor string) VideoStart {
	r.currentVideo = &v
	return VideoStart{Video: v, StartedBy: actor}
}

// PlaybackState relays a play/pause/seek without storing anything. There is
// deliberately no persisted playhead: late joiners start from zero.
func (r *Room) PlaybackState(action string, position float64, actor string) PlaybackUpdate {
	return PlaybackUpdate{Action: action, Time: position, From: actor}
}

// ShareSearch relays search results without persisting them.
func (r *Room) ShareSearch(kind, query string, results json.RawMessage, actor string) SearchBroadcast {
	return SearchBroadcast{Kind: kind, Query: query, Results: results, SearchedBy: actor}
}

// SetBrowseURL overwrites the shared co-browsing target. Persisted, so late
// joiners see it in their snapshot.
func (r *Room) SetBrowseURL(url, actor string) BrowseUpdate {
	r.browseURL = url
	return BrowseUpdate{URL: url, SharedBy: actor}
}

// PostChat appends a chat entry and returns it for broadcast to the whole
// room, sender included.
func (r *Room) PostChat(text, actor string) ChatMessage {
	return r.appendChat(ChatMessage{
		Nick:   actor,
		Text:   text,
		SentAt: time.Now(),
	})
}

// Users returns the member list in join order.
func (r *Room) Users() []User {
	users := make([]User, 0, len(r.joinOrder))
	for _, id := range r.joinOrder {
		if s, ok := r.members[id]; ok {
			users = append(users, User{Nick: s.Nick, SessionID: s.ID})
		}
	}
	return users
}

// Member returns the session for a member id.
func (r *Room) Member(sessionID string) (*Session, bool) {
	s, ok := r.members[sessionID]
	return s, ok
}

// Empty returns true if no members remain.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}

// BroadcastAll sends an event to every member, sender included.
func (r *Room) BroadcastAll(ev *Event) {
	for _, s := range r.members {
		s.send(ev)
	}
}

// BroadcastExcept sends an event to every member but the given one.
func (r *Room) BroadcastExcept(sessionID string, ev *Event) {
	for id, s := range r.members {
		if id == sessionID {
			continue
		}
		s.send(ev)
	}
}

func (r *Room) appendChat(msg ChatMessage) ChatMessage {
	r.chatHistory = append(r.chatHistory, msg)
	if n := len(r.chatHistory); n > ChatHistoryLimit {
		r.chatHistory = append(r.chatHistory[:0:0], r.chatHistory[n-ChatHistoryLimit:]...)
	}
	return msg
}

func (r *Room) snapshot() Snapshot {
	history := make([]ChatMessage, len(r.chatHistory))
	copy(history, r.chatHistory)

	var video *Video
	if r.currentVideo != nil {
		v := *r.currentVideo
		video = &v
	}
	return Snapshot{
		CurrentVideo: video,
		BrowseURL:    r.browseURL,
		ChatHistory:  history,
	}
}
