package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Hub routes session commands to room state machines and fans the resulting
// broadcasts back out. A single Run goroutine owns every Room's internals;
// per-room event order is the arrival order at that goroutine.
type Hub struct {
	registry *Registry
	relay    *CallRelay
	grace    time.Duration
	log      *zerolog.Logger

	register   chan *Session
	unregister chan *Session
	inbox      chan envelope
	reap       chan string
}

type envelope struct {
	sess *Session
	cmd  *Command
}

// NewHub constructs a hub over the given registry. grace is how long an
// empty room survives before deletion.
func NewHub(registry *Registry, relay *CallRelay, grace time.Duration, logger *zerolog.Logger) *Hub {
	return &Hub{
		registry:   registry,
		relay:      relay,
		grace:      grace,
		log:        logger,
		register:   make(chan *Session),
		unregister: make(chan *Session),
		inbox:      make(chan envelope, 64),
		reap:       make(chan string, 32),
	}
}

// RegisterSession hands a freshly connected session to the hub.
func (h *Hub) RegisterSession(s *Session) {
	h.register <- s
}

// UnregisterSession removes a disconnected session. Idempotent for sessions
// that never joined a room.
func (h *Hub) UnregisterSession(s *Session) {
	h.unregister <- s
}

// Run processes registrations and commands until the context is cancelled.
// Every command runs to completion before the next is picked up.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-h.register:
			h.startPump(s)
		case s := <-h.unregister:
			h.handleDisconnect(s)
		case env := <-h.inbox:
			h.dispatch(env.sess, env.cmd)
		case code := <-h.reap:
			h.registry.DeleteIfEmpty(code)
		}
	}
}

// startPump forwards the session's commands into the hub inbox, preserving
// per-connection order. The pump ends when the transport closes Commands.
func (h *Hub) startPump(s *Session) {
	h.log.Debug().Str("session", s.ID).Msg("session registered")
	go func() {
		for cmd := range s.Commands {
			h.inbox <- envelope{sess: s, cmd: cmd}
		}
	}()
}

func (h *Hub) dispatch(s *Session, cmd *Command) {
	if cmd.Kind == CommandJoinRoom {
		h.handleJoin(s, cmd)
		return
	}

	// Every other event requires a bound room; drop silently otherwise.
	if s.room == "" {
		h.log.Debug().Str("session", s.ID).Int("kind", int(cmd.Kind)).Msg("event before join dropped")
		return
	}
	room, ok := h.registry.Get(s.room)
	if !ok {
		// Raced with deletion: no-op, no broadcast.
		return
	}
	if _, member := room.Member(s.ID); !member {
		// Session already removed, e.g. a command queued behind a disconnect.
		return
	}

	switch cmd.Kind {
	case CommandSetVideo:
		start := room.SetVideo(cmd.Video, s.Nick)
		room.BroadcastExcept(s.ID, &Event{Kind: EventVideoStarted, Room: room.Code, Video: &start})
	case CommandPlaybackState:
		update := room.PlaybackState(cmd.Playback.Action, cmd.Playback.Time, s.Nick)
		room.BroadcastExcept(s.ID, &Event{Kind: EventPlaybackState, Room: room.Code, Playback: &update})
	case CommandShareSearch:
		share := room.ShareSearch(cmd.Search.Kind, cmd.Search.Query, cmd.Search.Results, s.Nick)
		room.BroadcastExcept(s.ID, &Event{Kind: EventSearchResults, Room: room.Code, Search: &share})
	case CommandSetBrowseURL:
		update := room.SetBrowseURL(cmd.URL, s.Nick)
		room.BroadcastExcept(s.ID, &Event{Kind: EventBrowseURL, Room: room.Code, Browse: &update})
	case CommandPostChat:
		msg := room.PostChat(cmd.Text, s.Nick)
		room.BroadcastAll(&Event{Kind: EventChatMessage, Room: room.Code, Message: &msg})
	case CommandCallInitiate:
		h.relay.Initiate(room, s, cmd.Call.To, cmd.Call.Signal)
	case CommandCallAccept:
		h.relay.Accept(room, s, cmd.Call.To, cmd.Call.Signal)
	case CommandCallEnd:
		h.relay.End(room, s, cmd.Call.To)
	}
}

func (h *Hub) handleJoin(s *Session, cmd *Command) {
	if s.room != "" {
		s.send(&Event{
			Kind:  EventError,
			Error: coreError(ErrCodeAlreadyJoined, "session is already bound to a room"),
		})
		return
	}

	code := NormalizeCode(cmd.Room)
	if code == "" {
		s.send(&Event{
			Kind:  EventError,
			Error: coreError(ErrCodeBadRequest, "room code is required"),
		})
		return
	}

	nick := cmd.Nick
	if nick == "" {
		nick = placeholderNick(s.ID)
	}

	room := h.registry.GetOrCreate(code)
	s.room = code

	snapshot, sys := room.Join(s, nick)
	s.send(&Event{Kind: EventRoomState, Room: code, Snapshot: &snapshot})
	room.BroadcastAll(&Event{Kind: EventUserList, Room: code, Users: room.Users()})
	room.BroadcastAll(&Event{Kind: EventChatMessage, Room: code, Message: &sys})

	h.log.Info().Str("room", code).Str("nick", nick).Int("users", len(room.Users())).Msg("user joined room")
}

func (h *Hub) handleDisconnect(s *Session) {
	defer close(s.Commands)

	if s.room == "" {
		return
	}
	room, ok := h.registry.Get(s.room)
	if !ok {
		return
	}

	sys, users, wasMember := room.Leave(s.ID)
	if !wasMember {
		return
	}
	room.BroadcastAll(&Event{Kind: EventChatMessage, Room: room.Code, Message: &sys})
	room.BroadcastAll(&Event{Kind: EventUserList, Room: room.Code, Users: users})

	h.log.Info().Str("room", room.Code).Str("nick", s.Nick).Int("users", len(users)).Msg("user left room")

	if room.Empty() {
		h.scheduleReap(room.Code)
	}
}

// reapRetry is how long a fired deletion timer waits before retrying when
// the reap channel is full.
const reapRetry = time.Second

// scheduleReap arms the empty-room deletion timer. The callback re-enters
// the hub inbox so the emptiness re-check runs on the hub goroutine.
func (h *Hub) scheduleReap(code string) {
	time.AfterFunc(h.grace, func() {
		h.enqueueReap(code)
	})
}

// enqueueReap hands a fired deletion timer to the hub. A full reap channel
// re-arms a retry instead of dropping the signal, so a backlog cannot leak
// the room forever.
func (h *Hub) enqueueReap(code string) {
	select {
	case h.reap <- code:
	default:
		time.AfterFunc(reapRetry, func() {
			h.enqueueReap(code)
		})
	}
}
