package core

// Session is one live transport connection as seen by the core layer.
// A session binds to at most one room for its entire lifetime; switching
// rooms requires a reconnect.
type Session struct {
	ID   string
	Nick string

	Commands chan *Command
	Events   chan *Event

	// room is the bound room code. Set once by the hub on join, cleared
	// never; only the hub goroutine touches it.
	room string
}

// NewSession constructs a session with initialized channels. An empty nick
// gets a placeholder derived from the session id; a join may replace it.
func NewSession(id, nick string) *Session {
	if nick == "" {
		nick = placeholderNick(id)
	}
	return &Session{
		ID:       id,
		Nick:     nick,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
	}
}

// send delivers an event without blocking. Slow consumers are dropped.
func (s *Session) send(ev *Event) {
	select {
	case s.Events <- ev:
	default:
	}
}

func placeholderNick(id string) string {
	if len(id) > 4 {
		id = id[:4]
	}
	return "User-" + id
}
