package analytics

// LeaderboardEntry is one row of the all-time winners board.
type LeaderboardEntry struct {
	PlayerName string  `json:"playerName"`
	Wins       int     `json:"wins"`
	Sessions   int     `json:"sessions"`
	BestTotal  float64 `json:"bestTotal"`
	Rank       int     `json:"rank"`
}

// PlayerStats aggregates one display name's archived sessions.
type PlayerStats struct {
	PlayerName    string  `json:"playerName"`
	Sessions      int     `json:"sessions"`
	Wins          int     `json:"wins"`
	AdversaryRuns int     `json:"adversaryRuns"`
	BestTotal     float64 `json:"bestTotal"`
	AvgTotal      float64 `json:"avgTotal"`
}
