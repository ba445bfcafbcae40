package core

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// CallRelay forwards opaque signaling blobs between sessions in the same
// room. It never inspects payloads and keeps no call state; ringing and
// accepted live client-side. Targets outside the sender's room are dropped.
type CallRelay struct {
	log *zerolog.Logger
}

// NewCallRelay constructs a relay.
func NewCallRelay(logger *zerolog.Logger) *CallRelay {
	return &CallRelay{log: logger}
}

// Initiate forwards a call offer to the target session.
func (c *CallRelay) Initiate(room *Room, from *Session, to string, signal json.RawMessage) {
	c.forward(room, from, to, EventCallIncoming, signal)
}

// Accept forwards a call answer back to the initiator.
func (c *CallRelay) Accept(room *Room, from *Session, to string, signal json.RawMessage) {
	c.forward(room, from, to, EventCallAccepted, signal)
}

// End notifies the counterparty the call is over. Without an explicit
// target the rest of the room is notified.
func (c *CallRelay) End(room *Room, from *Session, to string) {
	if to == "" {
		room.BroadcastExcept(from.ID, &Event{
			Kind: EventCallEnded,
			Room: room.Code,
			Call: &CallSignalEvent{From: from.ID, FromNick: from.Nick},
		})
		return
	}
	c.forward(room, from, to, EventCallEnded, nil)
}

func (c *CallRelay) forward(room *Room, from *Session, to string, kind EventKind, signal json.RawMessage) {
	target, ok := room.Member(to)
	if !ok {
		c.log.Debug().
			Str("room", room.Code).
			Str("from", from.ID).
			Str("to", to).
			Msg("call signal dropped, target not in room")
		return
	}
	target.send(&Event{
		Kind: kind,
		Room: room.Code,
		Call: &CallSignalEvent{From: from.ID, FromNick: from.Nick, Signal: signal},
	})
}
