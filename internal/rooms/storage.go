package rooms

import (
	"fmt"
	"sync"
	"time"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/broadcast"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/events"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/game"
)

const defaultStaleTTL = 1 * time.Hour

// Store is the process-wide room registry. It is initialized empty, filled
// by Create, and drained by host disconnects and the stale sweep; nothing
// persists across restarts.
type Store struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	staleTTL time.Duration
}

func NewStore(staleTTL time.Duration) *Store {
	if staleTTL <= 0 {
		staleTTL = defaultStaleTTL
	}
	s := &Store{
		rooms:    make(map[string]*Room),
		staleTTL: staleTTL,
	}
	go s.sweepStale()
	return s
}

// Create registers a new room owned by hostID. An identity hosts at most
// one room at a time, and codes are regenerated on collision rather than
// overwriting an existing room.
func (s *Store) Create(hostID, hostName string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, room := range s.rooms {
		if room.HostID == hostID {
			return nil, fmt.Errorf("identity already hosts room %s", room.Code)
		}
	}

	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}

		room := &Room{
			Code:        code,
			HostID:      hostID,
			HostName:    hostName,
			Game:        game.NewGame(hostID),
			Broadcaster: broadcast.NewBroadcaster(),
			CreatedAt:   time.Now(),
		}
		s.rooms[code] = room
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code]
}

func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

// RemovePlayer drops the identity from one room. A departing host takes the
// whole room with it: remaining members get a host-disconnected notice and
// the room is deleted. Cleanup never surfaces errors.
func (s *Store) RemovePlayer(code, identity string) {
	room := s.Get(code)
	if room == nil {
		return
	}

	if room.HostID == identity {
		room.Broadcaster.BroadcastExcept(identity, broadcast.Event{Name: events.HostDisconnected})
		s.Delete(code)
		room.Broadcaster.Close()
		return
	}

	if room.Game.RemovePlayer(identity) {
		room.Broadcaster.Broadcast(broadcast.Event{
			Name: events.PlayersUpdate,
			Data: room.Game.Players.Roster(),
		})
	}
	room.Broadcaster.Unsubscribe(identity)
}

// DisconnectAll applies the disconnect to every registered room: the
// identity might host one room and play in another. Costs O(active rooms).
func (s *Store) DisconnectAll(identity string) {
	for _, room := range s.List() {
		s.RemovePlayer(room.Code, identity)
	}
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for code, room := range s.rooms {
			if now.Sub(room.CreatedAt) > s.staleTTL {
				room.Broadcaster.Close()
				delete(s.rooms, code)
			}
		}
		s.mu.Unlock()
	}
}
