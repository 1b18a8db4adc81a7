package db

import (
	"fmt"
	"time"
)

// SessionRecord is one archived game session.
type SessionRecord struct {
	ID            string
	RoomCode      string
	HostName      string
	AdversaryName *string
	EndedAt       time.Time
	CreatedAt     time.Time
}

// SessionPlayer is one player's final standing in an archived session.
// FinalTotal is nil for the adversary.
type SessionPlayer struct {
	PlayerName string
	Role       string
	FinalTotal *float64
	Rank       *int
}

// FinishedSession is the unit handed to the archive writer when a host ends
// a game.
type FinishedSession struct {
	RoomCode      string
	HostName      string
	AdversaryName *string
	Players       []SessionPlayer
}

func (d *DB) CreateSession(roomCode, hostName string, adversaryName *string) (string, error) {
	var id string
	err := d.conn.QueryRow(`
		INSERT INTO sessions (room_code, host_name, adversary_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, roomCode, hostName, adversaryName).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

func (d *DB) AddSessionPlayer(sessionID string, p SessionPlayer) error {
	_, err := d.conn.Exec(`
		INSERT INTO session_players (session_id, player_name, role, final_total, rank)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, p.PlayerName, p.Role, p.FinalTotal, p.Rank)
	if err != nil {
		return fmt.Errorf("adding session player: %w", err)
	}
	return nil
}

// ArchiveSession writes one finished session and all its standings.
func (d *DB) ArchiveSession(fs FinishedSession) error {
	id, err := d.CreateSession(fs.RoomCode, fs.HostName, fs.AdversaryName)
	if err != nil {
		return err
	}
	for _, p := range fs.Players {
		if err := d.AddSessionPlayer(id, p); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) GetSession(id string) (*SessionRecord, error) {
	var s SessionRecord
	err := d.conn.QueryRow(`
		SELECT id, room_code, host_name, adversary_name, ended_at, created_at
		FROM sessions WHERE id = $1
	`, id).Scan(&s.ID, &s.RoomCode, &s.HostName, &s.AdversaryName, &s.EndedAt, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &s, nil
}
