package rooms

import (
	"time"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/broadcast"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/game"
)

type Room struct {
	Code        string
	HostID      string
	HostName    string
	Game        *game.Game
	Broadcaster *broadcast.Broadcaster
	CreatedAt   time.Time
}
