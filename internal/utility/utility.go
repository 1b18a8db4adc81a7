package utility

import "math/rand"

var avatars = []string{
	"🌱", "🌞", "💨", "🌊", "🔋", "🚗", "🏗️", "♻️", "🌾", "🏦", "🧪", "🛰️",
}

// RandomAvatar returns a fallback avatar for players that joined without one.
func RandomAvatar() string {
	return avatars[rand.Intn(len(avatars))]
}
