package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/catalog"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/players"
)

const (
	// MaxPlayers caps a room's roster.
	MaxPlayers = 8

	budgetTolerance = 1e-6
)

// Caps are the session capabilities an identity holds within one game.
// Authorization checks go through these rather than comparing raw
// identities at call sites.
type Caps struct {
	Host      bool
	Adversary bool
}

// News is one appended news event.
type News struct {
	SectorID int       `json:"sectorId"`
	Positive bool      `json:"positive"`
	Text     string    `json:"text"`
	Time     time.Time `json:"time"`
}

// JoinInfo is what a joining player gets back: the public catalog and the
// room's current unlock count.
type JoinInfo struct {
	Sectors         []catalog.PublicSector `json:"sectors"`
	SectorsUnlocked int                    `json:"sectorsUnlocked"`
}

// StartedPlayer is one roster entry in the session-started broadcast. Role
// visibility per recipient is a client presentation concern.
type StartedPlayer struct {
	Identity string       `json:"id"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar"`
	Role     players.Role `json:"role"`
}

// TipContent is a tip as delivered to a player: no truth flag.
type TipContent struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// TipSeen is the host's moderation copy of a routed tip. It carries the
// truth flag; it is unicast to the host only.
type TipSeen struct {
	From   string     `json:"from"`
	Tip    TipContent `json:"tip"`
	Truth  bool       `json:"truth"`
	Target string     `json:"target"`
}

// TipDelivery is one pending unicast of a tip to a player. The recipient
// identity routes the delivery and is never serialized.
type TipDelivery struct {
	Identity string     `json:"-"`
	From     string     `json:"from"`
	Tip      TipContent `json:"tip"`
}

// TipPlan is the routing outcome of a sendTip request: the host's copy plus
// zero or more player deliveries.
type TipPlan struct {
	HostIdentity string
	HostCopy     TipSeen
	Deliveries   []TipDelivery
}

// ResultEntry is one player's final standing. Total is nil for the
// adversary, whose entry is excluded from ranking.
type ResultEntry struct {
	Name  string       `json:"name"`
	Role  players.Role `json:"role"`
	Total *float64     `json:"total"`
}

// Results is the full end-of-session payload, including the hidden
// multiplier reveal.
type Results struct {
	Results     []ResultEntry        `json:"results"`
	Winner      *ResultEntry         `json:"winner"`
	Adversary   *AdversaryInfo       `json:"adversary"`
	Multipliers []catalog.Multiplier `json:"multipliers"`
}

type AdversaryInfo struct {
	Name string `json:"name"`
}

// Game is one room's session state machine.
type Game struct {
	mu              sync.Mutex
	Players         *players.Store
	hostIdentity    string
	adversary       string
	sectorsUnlocked int
	started         bool
	newsHistory     []News
}

func NewGame(hostIdentity string) *Game {
	return &Game{
		Players:         players.NewStore(),
		hostIdentity:    hostIdentity,
		sectorsUnlocked: catalog.DefaultUnlocked(),
	}
}

// CapsOf returns the capabilities the identity holds in this game.
func (g *Game) CapsOf(identity string) Caps {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.capsLocked(identity)
}

// capsLocked is CapsOf for callers already holding the mutex. Every
// privileged operation authorizes through it.
func (g *Game) capsLocked(identity string) Caps {
	return Caps{
		Host:      identity == g.hostIdentity,
		Adversary: g.adversary != "" && identity == g.adversary,
	}
}

func (g *Game) HostIdentity() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hostIdentity
}

func (g *Game) SectorsUnlocked() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sectorsUnlocked
}

func (g *Game) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started
}

// NewsHistory returns a copy of the appended news events.
func (g *Game) NewsHistory() []News {
	g.mu.Lock()
	defer g.mu.Unlock()
	history := make([]News, len(g.newsHistory))
	copy(history, g.newsHistory)
	return history
}

// Join adds a player and returns the public catalog plus the current unlock
// count. Joining again with the same identity is a no-op that returns fresh
// info; it never duplicates the roster entry or counts against capacity.
// The roster broadcast is the caller's job.
func (g *Game) Join(identity, name, avatar string) (JoinInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Players.Get(identity) == nil {
		if g.Players.Count() >= MaxPlayers {
			return JoinInfo{}, ErrRoomFull
		}
		g.Players.Add(identity, name, avatar)
	}
	return JoinInfo{
		Sectors:         catalog.Public(),
		SectorsUnlocked: g.sectorsUnlocked,
	}, nil
}

// RemovePlayer drops the identity from the roster, reporting whether it was
// a member.
func (g *Game) RemovePlayer(identity string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Players.Remove(identity)
}

// Start assigns the adversary role uniformly at random among the roster and
// marks the session started. A second start is rejected rather than
// re-rolling roles mid-session.
func (g *Game) Start(identity string) ([]StartedPlayer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.capsLocked(identity).Host {
		return nil, ErrForbidden
	}
	if g.started {
		return nil, ErrAlreadyStarted
	}
	roster := g.Players.GetList()
	if len(roster) < 2 {
		return nil, ErrInsufficientPlayers
	}

	g.adversary = roster[rand.Intn(len(roster))].Identity
	g.Players.SetRoles(g.adversary)
	g.started = true

	started := make([]StartedPlayer, 0, len(roster))
	for _, p := range g.Players.GetList() {
		started = append(started, StartedPlayer{
			Identity: p.Identity,
			Name:     p.Name,
			Avatar:   p.Avatar,
			Role:     p.Role,
		})
	}
	return started, nil
}

// UnlockTarget is either a concrete count or the "all" sentinel.
type UnlockTarget struct {
	All   bool
	Count int
}

// Unlock raises the unlock counter. It never decreases: the result is
// min(catalog size, max(current, requested)).
func (g *Game) Unlock(identity string, target UnlockTarget) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.capsLocked(identity).Host {
		return 0, ErrForbidden
	}
	if target.All {
		g.sectorsUnlocked = catalog.Size()
	} else {
		g.sectorsUnlocked = min(catalog.Size(), max(g.sectorsUnlocked, target.Count))
	}
	return g.sectorsUnlocked, nil
}

// FlashNews appends a host-authored news event. It is signal text only: it
// alters neither multipliers nor unlock state.
func (g *Game) FlashNews(identity string, sectorID int, positive bool) (News, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.capsLocked(identity).Host {
		return News{}, ErrForbidden
	}
	sector := catalog.Get(sectorID)
	if sector == nil {
		return News{}, ErrInvalidSector
	}

	text := sector.Name + " — Negative / Delay"
	if positive {
		text = sector.Name + " — Positive policy/news"
	}
	news := News{
		SectorID: sectorID,
		Positive: positive,
		Text:     text,
		Time:     time.Now(),
	}
	g.newsHistory = append(g.newsHistory, news)
	return news, nil
}

// Submit validates the raw allocation payload and, only if every pair passes,
// replaces the player's allocations wholesale. Keys arrive as strings off the
// wire and must parse to in-range sector ids before any mutation.
func (g *Game) Submit(identity string, raw map[string]float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	player := g.Players.Get(identity)
	if player == nil {
		return ErrNotJoined
	}

	allocations := make(map[int]float64, len(raw))
	total := 0.0
	for key, amount := range raw {
		sid, err := strconv.Atoi(key)
		if err != nil || sid < 0 || sid >= catalog.Size() {
			return fmt.Errorf("%w: %q", ErrInvalidSector, key)
		}
		if !catalog.Investable(sid, g.sectorsUnlocked) {
			return fmt.Errorf("%w: %s", ErrSectorLocked, catalog.Get(sid).Name)
		}
		if amount < 0 {
			return ErrNegativeAmount
		}
		allocations[sid] = amount
		total += amount
	}
	if total > players.StartingBudget+budgetTolerance {
		return ErrBudgetExceeded
	}

	g.Players.Commit(identity, allocations, math.Max(0, players.StartingBudget-total))
	return nil
}

// SendTip resolves a tip route: a moderation copy for the host plus the
// player deliveries. "ALL" fans out to every player except the adversary;
// a name targets the first matching player.
func (g *Game) SendTip(identity string, tipID int, target string) (TipPlan, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.capsLocked(identity).Adversary {
		return TipPlan{}, ErrForbidden
	}
	tip := catalog.GetTip(tipID)
	if tip == nil {
		return TipPlan{}, ErrInvalidTip
	}

	content := TipContent{ID: tip.ID, Text: tip.Text}
	plan := TipPlan{
		HostIdentity: g.hostIdentity,
		HostCopy: TipSeen{
			From:   "Adversary",
			Tip:    content,
			Truth:  tip.Truth,
			Target: target,
		},
	}

	if target == "ALL" {
		for _, p := range g.Players.GetList() {
			if p.Identity == g.adversary {
				continue
			}
			plan.Deliveries = append(plan.Deliveries, TipDelivery{
				Identity: p.Identity,
				From:     "Adversary",
				Tip:      content,
			})
		}
		return plan, nil
	}

	targetPlayer := g.Players.FindByName(target)
	if targetPlayer == nil {
		return TipPlan{}, ErrTargetNotFound
	}
	plan.Deliveries = append(plan.Deliveries, TipDelivery{
		Identity: targetPlayer.Identity,
		From:     "Adversary",
		Tip:      content,
	})
	return plan, nil
}

// End scores every investor against the hidden multipliers: final value is
// remaining cash at 1x plus each allocation times its sector multiplier.
// Investors rank descending, ties keeping join order; the adversary is
// listed last with no total. Repeatable; the room outlives the call.
func (g *Game) End(identity string) (Results, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.capsLocked(identity).Host {
		return Results{}, ErrForbidden
	}

	var (
		investors []ResultEntry
		adversary *ResultEntry
		advInfo   *AdversaryInfo
	)
	for _, p := range g.Players.GetList() {
		if p.Role == players.RoleAdversary {
			entry := ResultEntry{Name: p.Name, Role: p.Role}
			adversary = &entry
			advInfo = &AdversaryInfo{Name: p.Name}
			continue
		}
		total := p.Remaining
		for sid, amount := range p.Allocations {
			total += amount * catalog.Get(sid).HiddenMult
		}
		investors = append(investors, ResultEntry{Name: p.Name, Role: p.Role, Total: &total})
	}

	sort.SliceStable(investors, func(i, j int) bool {
		return *investors[i].Total > *investors[j].Total
	})

	var winner *ResultEntry
	if len(investors) > 0 {
		winner = &investors[0]
	}

	results := investors
	if adversary != nil {
		results = append(results, *adversary)
	}

	return Results{
		Results:     results,
		Winner:      winner,
		Adversary:   advInfo,
		Multipliers: catalog.Multipliers(),
	}, nil
}
