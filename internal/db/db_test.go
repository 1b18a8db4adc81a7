package db

import (
	"os"
	"testing"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		// Clean up test data
		database.conn.Exec("DELETE FROM session_players")
		database.conn.Exec("DELETE FROM sessions")
		database.Close()
	})
	return database
}

func TestConnect(t *testing.T) {
	database := getTestDB(t)
	if err := database.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	database := getTestDB(t)

	// Verify tables exist by querying them
	tables := []string{"sessions", "session_players"}
	for _, table := range tables {
		var exists bool
		err := database.conn.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)
		`, table).Scan(&exists)
		if err != nil {
			t.Errorf("checking table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestCreateSession(t *testing.T) {
	database := getTestDB(t)

	adversary := "Bob"
	id, err := database.CreateSession("ABCDEF", "Hima", &adversary)
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if id == "" {
		t.Error("CreateSession() returned empty ID")
	}

	s, err := database.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if s.RoomCode != "ABCDEF" || s.HostName != "Hima" {
		t.Errorf("session = %+v", s)
	}
	if s.AdversaryName == nil || *s.AdversaryName != "Bob" {
		t.Errorf("adversary = %v, want Bob", s.AdversaryName)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	database := getTestDB(t)

	_, err := database.GetSession("00000000-0000-0000-0000-000000000000")
	if err == nil {
		t.Error("GetSession() should return error for nonexistent session")
	}
}

func TestArchiveSession(t *testing.T) {
	database := getTestDB(t)

	total := 125.0
	rank := 1
	adversary := "Carol"
	err := database.ArchiveSession(FinishedSession{
		RoomCode:      "QRSTUV",
		HostName:      "Hima",
		AdversaryName: &adversary,
		Players: []SessionPlayer{
			{PlayerName: "Alice", Role: "investor", FinalTotal: &total, Rank: &rank},
			{PlayerName: "Carol", Role: "adversary"},
		},
	})
	if err != nil {
		t.Fatalf("ArchiveSession() error: %v", err)
	}

	var count int
	database.conn.QueryRow(`
		SELECT COUNT(*) FROM session_players sp
		JOIN sessions s ON s.id = sp.session_id
		WHERE s.room_code = 'QRSTUV'
	`).Scan(&count)
	if count != 2 {
		t.Errorf("archived players = %d, want 2", count)
	}

	var finalTotal *float64
	database.conn.QueryRow(`
		SELECT final_total FROM session_players WHERE player_name = 'Carol' AND role = 'adversary'
	`).Scan(&finalTotal)
	if finalTotal != nil {
		t.Error("adversary final_total should be NULL")
	}
}
