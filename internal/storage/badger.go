package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
)

// Key layout
const (
	gamePrefix = "game/"
	movePrefix = "move/"
)

func gameKey(gameID string) []byte {
	return []byte(gamePrefix + gameID)
}

func movesPrefix(gameID string) []byte {
	return []byte(movePrefix + gameID + "/")
}

// move numbers are zero padded so keys iterate in play order
func moveKey(gameID string, moveNumber int) []byte {
	return []byte(fmt.Sprintf("%s%s/%06d", movePrefix, gameID, moveNumber))
}

// BadgerStore keeps games and moves as JSON values in an embedded BadgerDB.
// Writes are synchronous.
type BadgerStore struct {
	db           *badger.DB
	path         string
	healthStatus atomic.Bool
	closeOnce    sync.Once
	closeErr     error
}

// NewBadgerStore opens (or creates) the database directory at path
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	s := &BadgerStore{db: db, path: path}
	s.healthStatus.Store(true)
	return s, nil
}

// write runs fn in an update transaction, degrading the store on failure
func (s *BadgerStore) write(what string, fn func(txn *badger.Txn) error) error {
	if !s.healthStatus.Load() {
		return nil
	}
	if err := s.db.Update(fn); err != nil {
		log.Printf("Storage degraded: %s failed: %v", what, err)
		s.healthStatus.Store(false)
	}
	return nil
}

func (s *BadgerStore) RecordNewGame(record GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.write("game record", func(txn *badger.Txn) error {
		return txn.Set(gameKey(record.GameID), data)
	})
}

func (s *BadgerStore) RecordMove(record MoveRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.write("move record", func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(record.GameID)); err != nil {
			return fmt.Errorf("game %s: %w", record.GameID, err)
		}
		return txn.Set(moveKey(record.GameID, record.MoveNumber), data)
	})
}

func (s *BadgerStore) DeleteUndoneMoves(gameID string, afterMoveNumber int) error {
	return s.write("undo operation", func(txn *badger.Txn) error {
		prefix := movesPrefix(gameID)
		var stale [][]byte

		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		for it.Rewind(); it.Valid(); it.Next() {
			var m MoveRecord
			item := it.Item()
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				it.Close()
				return err
			}
			if m.MoveNumber > afterMoveNumber {
				stale = append(stale, item.KeyCopy(nil))
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// QueryGames retrieves games with optional filtering, newest first
func (s *BadgerStore) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	var games []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		if !isWildcard(gameID) {
			item, err := txn.Get(gameKey(gameID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			var g GameRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			}); err != nil {
				return err
			}
			if matchesFilter(playerID, g.WhitePlayerID) || matchesFilter(playerID, g.BlackPlayerID) {
				games = append(games, g)
			}
			return nil
		}

		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, Prefix: []byte(gamePrefix)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var g GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			}); err != nil {
				return err
			}
			if matchesFilter(playerID, g.WhitePlayerID) || matchesFilter(playerID, g.BlackPlayerID) {
				games = append(games, g)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].StartTimeUTC.After(games[j].StartTimeUTC)
	})
	return games, nil
}

// QueryMoves retrieves the move log of a game in play order
func (s *BadgerStore) QueryMoves(gameID string) ([]MoveRecord, error) {
	var moves []MoveRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, Prefix: movesPrefix(gameID)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var m MoveRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return err
			}
			moves = append(moves, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return moves, nil
}

func (s *BadgerStore) IsHealthy() bool {
	return s.healthStatus.Load()
}

// InitDB is a no-op: badger creates its directory on open
func (s *BadgerStore) InitDB() error {
	return nil
}

// DeleteDB closes the store and removes the database directory
func (s *BadgerStore) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	// ☣ DESTRUCTIVE: Removes database directory
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("failed to delete database directory: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
