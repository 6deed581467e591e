package storage

import (
	"path/filepath"
	"testing"
	"time"
)

const (
	testGameID  = "0b7c8e8a-3c55-4b51-9a39-4f1b0b5d2f10"
	otherGameID = "6a1f2c4e-9d7b-4e3a-8c21-5e6f7a8b9c0d"
	whiteID     = "white-player"
	blackID     = "black-player"
)

func sampleGame(id string, start time.Time) GameRecord {
	return GameRecord{
		GameID:          id,
		InitialPosition: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w",
		WhitePlayerID:   whiteID,
		WhiteName:       "White",
		BlackPlayerID:   blackID,
		BlackName:       "Black",
		StartTimeUTC:    start,
	}
}

func sampleMoves(gameID string) []MoveRecord {
	now := time.Now().UTC()
	return []MoveRecord{
		{GameID: gameID, MoveNumber: 1, Move: "e2e4", PositionAfter: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b", PlayerColor: "w", MoveTimeUTC: now},
		{GameID: gameID, MoveNumber: 2, Move: "e7e5", PositionAfter: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w", PlayerColor: "b", MoveTimeUTC: now},
		{GameID: gameID, MoveNumber: 3, Move: "g1f3", PositionAfter: "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b", PlayerColor: "w", MoveTimeUTC: now},
	}
}

// populate writes two games, three moves, then undoes the last two
func populate(t *testing.T, s Store) {
	t.Helper()
	start := time.Now().UTC().Truncate(time.Second)
	if err := s.RecordNewGame(sampleGame(testGameID, start.Add(-time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordNewGame(sampleGame(otherGameID, start)); err != nil {
		t.Fatal(err)
	}
	for _, m := range sampleMoves(testGameID) {
		if err := s.RecordMove(m); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.DeleteUndoneMoves(testGameID, 1); err != nil {
		t.Fatal(err)
	}
}

func checkContents(t *testing.T, s Store) {
	t.Helper()

	if !s.IsHealthy() {
		t.Fatal("store degraded")
	}

	games, err := s.QueryGames("*", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Fatalf("QueryGames(*) returned %d games, want 2", len(games))
	}
	if games[0].GameID != otherGameID {
		t.Errorf("newest game first: got %s", games[0].GameID)
	}

	games, err = s.QueryGames(testGameID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].WhiteName != "White" || games[0].BlackPlayerID != blackID {
		t.Errorf("QueryGames(id) = %+v", games)
	}

	games, err = s.QueryGames("", "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 0 {
		t.Errorf("player filter matched %d games", len(games))
	}

	games, err = s.QueryGames("", blackID)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Errorf("player filter matched %d games, want 2", len(games))
	}

	moves, err := s.QueryMoves(testGameID)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 1 || moves[0].Move != "e2e4" || moves[0].PlayerColor != "w" {
		t.Errorf("moves after undo = %+v", moves)
	}

	moves, err = s.QueryMoves(otherGameID)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 0 {
		t.Errorf("other game has %d moves", len(moves))
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")

	s, err := NewSQLiteStore(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatal(err)
	}
	populate(t, s)

	// Close flushes the async writer
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !s.IsHealthy() {
		t.Fatal("store degraded while writing")
	}

	reopened, err := NewSQLiteStore(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	checkContents(t, reopened)
}

func TestSQLiteStoreDegradesWithoutSchema(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "empty.db"), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordNewGame(sampleGame(testGameID, time.Now().UTC())); err != nil {
		t.Errorf("RecordNewGame returned %v, writes never fail callers", err)
	}
	s.Close()

	if s.IsHealthy() {
		t.Error("store healthy after a failed write")
	}
}

func TestSQLiteDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doomed.db")
	s, err := NewSQLiteStore(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteDB(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
}

func TestBadgerStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	s, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	populate(t, s)
	checkContents(t, s)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	checkContents(t, reopened)
}

func TestBadgerMoveNeedsGame(t *testing.T) {
	s, err := NewBadgerStore(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.RecordMove(sampleMoves(testGameID)[0])
	if s.IsHealthy() {
		t.Error("move for an unknown game accepted")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		driver  string
		path    string
		wantErr bool
	}{
		{"sqlite", filepath.Join(dir, "a.db"), false},
		{"SQLite3", filepath.Join(dir, "b.db"), false},
		{"badger", filepath.Join(dir, "kv"), false},
		{"postgres", filepath.Join(dir, "c.db"), true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			s, err := Open(tt.driver, tt.path, false)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			s.Close()
		})
	}
}
