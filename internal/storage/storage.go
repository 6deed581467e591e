package storage

import (
	"fmt"
	"strings"
)

// Driver names accepted by Open
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Store persists games and their move logs. Writes never fail gameplay:
// a failing backend marks itself unhealthy and drops further writes.
type Store interface {
	RecordNewGame(record GameRecord) error
	RecordMove(record MoveRecord) error
	// DeleteUndoneMoves removes every move numbered above afterMoveNumber
	DeleteUndoneMoves(gameID string, afterMoveNumber int) error
	// QueryGames filters by game and player ID; "" or "*" matches all
	QueryGames(gameID, playerID string) ([]GameRecord, error)
	QueryMoves(gameID string) ([]MoveRecord, error)
	IsHealthy() bool
	InitDB() error
	DeleteDB() error
	Close() error
}

// Open selects a backend by driver name
func Open(driver, path string, devMode bool) (Store, error) {
	switch strings.ToLower(driver) {
	case DriverSQLite, "sqlite3":
		store, err := NewSQLiteStore(path, devMode)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverBadger:
		store, err := NewBadgerStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", driver)
	}
}

func isWildcard(filter string) bool {
	return filter == "" || filter == "*"
}

func matchesFilter(filter, value string) bool {
	return isWildcard(filter) || filter == value
}
