package players

import (
	"sync"
	"time"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/utility"
)

// StartingBudget is every player's initial remaining budget.
const StartingBudget = 100.0

// Store holds one room's roster in join order.
type Store struct {
	mu      sync.Mutex
	players []*Player
}

func NewStore() *Store {
	return &Store{}
}

// Add registers the identity and returns its entry. Membership is unique by
// identity: adding an existing identity returns the original entry untouched.
func (s *Store) Add(identity, name, avatar string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.findLocked(identity); existing != nil {
		return existing
	}
	if avatar == "" {
		avatar = utility.RandomAvatar()
	}
	player := &Player{
		Identity:    identity,
		Name:        name,
		Avatar:      avatar,
		Role:        RoleInvestor,
		Allocations: make(map[int]float64),
		Remaining:   StartingBudget,
	}
	s.players = append(s.players, player)
	return player
}

func (s *Store) Get(identity string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(identity)
}

// FindByName returns the first player with the given display name, in join
// order. Names are not unique; identity is.
func (s *Store) FindByName(name string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// GetList returns the roster in join order.
func (s *Store) GetList() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Player, len(s.players))
	copy(list, s.players)
	return list
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

func (s *Store) Remove(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.players {
		if p.Identity == identity {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return true
		}
	}
	return false
}

// SetRoles marks the given identity adversary and everyone else investor.
func (s *Store) SetRoles(adversaryIdentity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		if p.Identity == adversaryIdentity {
			p.Role = RoleAdversary
		} else {
			p.Role = RoleInvestor
		}
	}
}

// Commit replaces the player's allocations wholesale and updates the
// remaining budget. Returns nil if the identity is not in the roster.
func (s *Store) Commit(identity string, allocations map[int]float64, remaining float64) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(identity)
	if p == nil {
		return nil
	}
	p.Allocations = allocations
	p.Remaining = remaining
	now := time.Now()
	p.LastSubmit = &now
	return p
}

// Roster returns the broadcast-safe view of every player, in join order.
func (s *Store) Roster() []RosterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster := make([]RosterEntry, 0, len(s.players))
	for _, p := range s.players {
		roster = append(roster, RosterEntry{
			Name:      p.Name,
			Avatar:    p.Avatar,
			Role:      p.Role,
			Remaining: p.Remaining,
		})
	}
	return roster
}

func (s *Store) findLocked(identity string) *Player {
	for _, p := range s.players {
		if p.Identity == identity {
			return p
		}
	}
	return nil
}
