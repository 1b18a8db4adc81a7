package analytics

import (
	"fmt"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/db"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

// TopWinners ranks archived players by rank-1 finishes, breaking ties on
// best final total. Names are not globally unique; the board aggregates by
// display name.
func (q *Queries) TopWinners(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := q.DB.Query(`
		SELECT
			player_name,
			COUNT(*) FILTER (WHERE rank = 1) as wins,
			COUNT(*) as sessions,
			COALESCE(MAX(final_total), 0) as best_total
		FROM session_players
		WHERE role = 'investor'
		GROUP BY player_name
		ORDER BY wins DESC, best_total DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top winners: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerName, &e.Wins, &e.Sessions, &e.BestTotal); err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetPlayerStats aggregates every archived session for one display name.
func (q *Queries) GetPlayerStats(playerName string) (*PlayerStats, error) {
	stats := &PlayerStats{PlayerName: playerName}

	err := q.DB.QueryRow(`
		SELECT
			COUNT(*) as sessions,
			COUNT(*) FILTER (WHERE rank = 1) as wins,
			COUNT(*) FILTER (WHERE role = 'adversary') as adversary_runs,
			COALESCE(MAX(final_total), 0) as best_total,
			COALESCE(AVG(final_total), 0) as avg_total
		FROM session_players
		WHERE player_name = $1
	`, playerName).Scan(&stats.Sessions, &stats.Wins, &stats.AdversaryRuns, &stats.BestTotal, &stats.AvgTotal)
	if err != nil {
		return nil, fmt.Errorf("getting player stats: %w", err)
	}
	return stats, nil
}
