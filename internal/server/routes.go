package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/config"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/db"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/rooms"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/wshub"
)

func Run(cfg config.Config) error {
	srv := &Server{
		Rooms:   rooms.NewStore(cfg.RoomTTL),
		Hub:     wshub.NewHub(),
		Verbose: cfg.Verbose,
	}

	// Optional database connection
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			srv.Archive = make(chan db.FinishedSession, 64)
			go sessionArchiver(database, srv.Archive)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	log.Printf("[Server] Listening on %s\n", cfg.Addr())
	return http.ListenAndServe(cfg.Addr(), srv.Routes())
}

// Routes assembles the HTTP surface. The WebSocket endpoint sits outside
// the timeout group: connections are long-lived.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.handleWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/healthz", s.handleHealth)
		r.Get("/room/{code}/qr", s.handleRoomQR)
		r.Get("/api/leaderboard", s.handleLeaderboard)
		r.Get("/api/player/{name}", s.handlePlayerStats)
	})

	return r
}

// sessionArchiver drains finished sessions into Postgres. Archive failures
// are logged and dropped: the game never depends on the database.
func sessionArchiver(database *db.DB, buffer chan db.FinishedSession) {
	for fs := range buffer {
		if err := database.ArchiveSession(fs); err != nil {
			log.Printf("[DB] ArchiveSession error: %v\n", err)
		}
	}
}
