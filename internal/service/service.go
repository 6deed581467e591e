package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/game"
	"github.com/VideosHosting/Chess/internal/storage"

	"github.com/google/uuid"
)

// Service is the in-memory registry of games with optional persistence
type Service struct {
	games  map[string]*game.Game
	mu     sync.RWMutex
	store  storage.Store // nil if persistence disabled
	waiter *WaitRegistry
}

// New creates a service; pass a nil store to disable persistence
func New(store storage.Store) *Service {
	return &Service{
		games:  make(map[string]*game.Game),
		store:  store,
		waiter: NewWaitRegistry(),
	}
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return g, nil
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// GameCount returns the number of games in memory
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close releases waiting clients, drops all games and closes storage
func (s *Service) Close() error {
	if err := s.waiter.Shutdown(5 * time.Second); err != nil {
		log.Printf("Wait registry shutdown: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
