package players

import "time"

type Role string

const (
	RoleInvestor  = Role("investor")
	RoleAdversary = Role("adversary")
)

// Player is one room member. Allocations maps sector id to a budget amount;
// Allocations plus Remaining always totals the starting budget after a
// committed submission.
type Player struct {
	Identity    string
	Name        string
	Avatar      string
	Role        Role
	Allocations map[int]float64
	Remaining   float64
	LastSubmit  *time.Time
}

// RosterEntry is the broadcast-safe view of a player. Allocation detail is
// never part of the roster.
type RosterEntry struct {
	Name      string  `json:"name"`
	Avatar    string  `json:"avatar"`
	Role      Role    `json:"role"`
	Remaining float64 `json:"remaining"`
}
