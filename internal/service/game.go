package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/game"
	"github.com/VideosHosting/Chess/internal/storage"
)

// CreateGame registers a new game under id. An empty position starts from
// the standard setup.
func (s *Service) CreateGame(id string, whiteConfig, blackConfig core.PlayerConfig, position string) (*game.Game, error) {
	whitePlayer := core.NewPlayer(whiteConfig, core.ColorWhite)
	blackPlayer := core.NewPlayer(blackConfig, core.ColorBlack)

	g, err := game.New(position, whitePlayer, blackPlayer)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return nil, fmt.Errorf("%w: %s", core.ErrGameExists, id)
	}
	s.games[id] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:          id,
			InitialPosition: g.InitialPosition(),
			WhitePlayerID:   whitePlayer.ID,
			WhiteName:       whitePlayer.Name,
			BlackPlayerID:   blackPlayer.ID,
			BlackName:       blackPlayer.Name,
			StartTimeUTC:    time.Now().UTC(),
		})
	}

	return g, nil
}

// MakeMove plays a long algebraic move in a game, notifying waiters and
// persisting the move on success
func (s *Service) MakeMove(gameID, move string) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	result, err := g.MakeMove(move)
	if err != nil {
		return nil, err
	}

	moveNumber := g.MoveCount()
	s.waiter.NotifyGame(gameID, moveNumber)

	if s.store != nil {
		s.store.RecordMove(storage.MoveRecord{
			GameID:        gameID,
			MoveNumber:    moveNumber,
			Move:          result.Move,
			PositionAfter: g.Position(),
			PlayerColor:   result.PlayerColor.String(),
			MoveTimeUTC:   time.Now().UTC(),
		})
	}

	return result, nil
}

// UndoMoves takes back count moves of a game
func (s *Service) UndoMoves(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	if err := g.UndoMoves(count); err != nil {
		return err
	}

	remaining := g.MoveCount()
	s.waiter.NotifyGame(gameID, remaining)

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, remaining)
	}

	return nil
}

// LegalMoves lists the moves of the piece on square for the side to move
func (s *Service) LegalMoves(gameID, square string) (core.MoveSet, core.Piece, error) {
	g, err := s.GetGame(gameID)
	if err != nil {
		return nil, core.Piece{}, err
	}
	return g.LegalMoves(square)
}

// DeleteGame removes a game from memory; stored records are kept
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}

// RegisterWait returns a channel signalled when the game's move count
// differs from moveCount, the game is deleted, or the wait times out.
// Cancel ctx when done waiting.
func (s *Service) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	return s.waiter.RegisterWait(ctx, gameID, moveCount)
}
