package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/analytics"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

// handleLeaderboard returns the all-time winners board. Without a database
// there is nothing to rank, so the board is empty rather than an error.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, []analytics.LeaderboardEntry{})
		return
	}

	q := analytics.NewQueries(s.DB)
	entries, err := q.TopWinners(10)
	if err != nil {
		log.Printf("[Analytics] leaderboard error: %v\n", err)
		http.Error(w, "Error loading leaderboard", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []analytics.LeaderboardEntry{}
	}
	writeJSON(w, entries)
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Analytics requires a database connection", http.StatusServiceUnavailable)
		return
	}

	name := chi.URLParam(r, "name")
	q := analytics.NewQueries(s.DB)
	stats, err := q.GetPlayerStats(name)
	if err != nil {
		log.Printf("[Analytics] player stats error: %v\n", err)
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	writeJSON(w, stats)
}
