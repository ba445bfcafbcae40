package core

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/utils"
)

// Registry owns the mapping from room code to Room. The map has its own
// lock because REST handlers create and probe rooms off the hub goroutine;
// a Room's internals are still mutated only by the hub.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	log   *zerolog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		log:   logger,
	}
}

// NormalizeCode canonicalizes a room code. Codes are case-insensitive;
// uppercase is canonical.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom generates a fresh room code and registers a blank room.
// Collisions are vanishingly unlikely but retried anyway.
func (g *Registry) CreateRoom() (string, *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		code := utils.NewRoomCode()
		if _, taken := g.rooms[code]; taken {
			continue
		}
		room := NewRoom(code)
		g.rooms[code] = room
		g.log.Info().Str("room", code).Msg("room created")
		return code, room
	}
}

// Exists reports whether a room with the given code is registered.
func (g *Registry) Exists(code string) bool {
	code = NormalizeCode(code)
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.rooms[code]
	return ok
}

// Get returns the room for a code, if registered.
func (g *Registry) Get(code string) (*Room, bool) {
	code = NormalizeCode(code)
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[code]
	return room, ok
}

// GetOrCreate returns the existing room or atomically registers a blank one,
// so a manually typed room code can be joined without explicit creation.
func (g *Registry) GetOrCreate(code string) *Room {
	code = NormalizeCode(code)
	g.mu.Lock()
	defer g.mu.Unlock()

	if room, ok := g.rooms[code]; ok {
		return room
	}
	room := NewRoom(code)
	g.rooms[code] = room
	g.log.Info().Str("room", code).Msg("room auto-created on join")
	return room
}

// DeleteIfEmpty removes the room only if it has no members right now.
// Callers re-invoke this when a deletion timer fires; re-checking current
// membership here is what lets a rejoin during the grace window cancel the
// pending deletion implicitly. Must be called from the hub goroutine.
func (g *Registry) DeleteIfEmpty(code string) bool {
	code = NormalizeCode(code)
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms[code]
	if !ok || !room.Empty() {
		return false
	}
	delete(g.rooms, code)
	g.log.Info().Str("room", code).Msg("empty room deleted")
	return true
}

// Len returns the number of registered rooms.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
