package events

import "github.com/kamalchopra096-alt/fmi-green-bonds/internal/game"

// Server-to-room notification names. Broadcasts use the room channel;
// ReceiveTip and TipSeen are unicast.
const (
	PlayersUpdate    = "playersUpdate"
	GameStarted      = "gameStarted"
	News             = "news"
	SectorsUnlocked  = "sectorsUnlocked"
	HostDisconnected = "hostDisconnected"
	GameEnded        = "gameEnded"
	ReceiveTip       = "receiveTip"
	TipSeen          = "tipSeen"
)

// GameStartedPayload accompanies the GameStarted broadcast.
type GameStartedPayload struct {
	SectorsUnlocked int                  `json:"sectorsUnlocked"`
	Players         []game.StartedPlayer `json:"players"`
}
