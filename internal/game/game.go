package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/VideosHosting/Chess/internal/board"
	"github.com/VideosHosting/Chess/internal/core"
)

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move        string     `json:"move"`
	PlayerColor core.Color `json:"playerColor"`
	GameState   core.State `json:"gameState"`
	Captured    core.Piece `json:"captured"`
	Check       bool       `json:"check"` // opponent king attacked after the move
}

// Game is one session on a single board. All methods are safe for
// concurrent use; the board itself is never handed out.
type Game struct {
	mu         sync.Mutex
	board      *board.Board
	initialPos string
	moves      []string
	players    map[core.Color]*core.Player
	state      core.State
	lastResult *MoveResult
}

// New starts a game from position, or from the standard start when empty
func New(position string, whitePlayer, blackPlayer *core.Player) (*Game, error) {
	if strings.TrimSpace(position) == "" {
		position = board.StartingPosition
	}

	b := board.New()
	if err := b.Load(position); err != nil {
		return nil, err
	}

	return &Game{
		board:      b,
		initialPos: b.Position(),
		players: map[core.Color]*core.Player{
			core.ColorWhite: whitePlayer,
			core.ColorBlack: blackPlayer,
		},
		state: core.StateOngoing,
	}, nil
}

// LegalMoves lists the pseudo-legal moves of the piece on square. Pieces
// of the side not on move have none.
func (g *Game) LegalMoves(square string) (core.MoveSet, core.Piece, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.board.PieceAt(square)
	if err != nil {
		return nil, core.Piece{}, err
	}
	if p.Empty() || p.Color != g.board.SideToMove() || g.state != core.StateOngoing {
		return core.MoveSet{}, p, nil
	}
	return g.board.PseudoLegalMoves(p), p, nil
}

// MakeMove plays a move given in long algebraic form ("e2e4") for the side
// to move. A rejected move leaves the game unchanged.
func (g *Game) MakeMove(moveStr string) (*MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != core.StateOngoing {
		return nil, fmt.Errorf("%w: %s", core.ErrGameOver, g.state)
	}

	m, err := core.ParseMove(strings.ToLower(moveStr))
	if err != nil {
		return nil, err
	}

	p, err := g.board.GetPiece(m.FromRank, m.FromFile)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return nil, fmt.Errorf("%w: no piece on %s", core.ErrInvalidMove, p.Square())
	}

	mover := g.board.SideToMove()
	if p.Color != mover {
		return nil, fmt.Errorf("%w: %s piece on %s, %s to move",
			core.ErrNotYourTurn, p.Color.Name(), p.Square(), mover.Name())
	}

	if !g.board.ApplyMove(p, m.ToFile, m.ToRank) {
		return nil, fmt.Errorf("%w: %s cannot move %s", core.ErrInvalidMove, p.Type, m)
	}

	_, captured, _ := g.board.LastMove()
	g.moves = append(g.moves, m.String())

	result := &MoveResult{
		Move:        m.String(),
		PlayerColor: mover,
		Captured:    captured,
	}

	if captured.Type == core.King {
		g.state = core.WinnerState(mover)
	} else {
		// positions set up without both kings simply never report check
		check, err := g.board.IsInCheck(core.OppositeColor(mover))
		result.Check = err == nil && check
	}

	result.GameState = g.state
	g.lastResult = result
	return result, nil
}

// UndoMoves takes back the last count moves
func (g *Game) UndoMoves(count int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}
	if available := len(g.moves); available < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, available)
	}

	for i := 0; i < count; i++ {
		g.board.UndoMove()
	}
	g.moves = g.moves[:len(g.moves)-count]
	g.state = core.StateOngoing // Reset game state when undoing
	g.lastResult = nil
	return nil
}

// InCheck reports whether c's king is attacked. Positions without both
// kings report ErrMissingKing.
func (g *Game) InCheck(c core.Color) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.IsInCheck(c)
}

// SideInCheck reports whether the side to move is in check, treating a
// missing king as no check
func (g *Game) SideInCheck() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	check, err := g.board.IsInCheck(g.board.SideToMove())
	return err == nil && check
}

func (g *Game) Position() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Position()
}

func (g *Game) InitialPosition() string {
	return g.initialPos
}

func (g *Game) NextTurn() core.Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.SideToMove()
}

func (g *Game) NextPlayer() *core.Player {
	return g.GetPlayer(g.NextTurn())
}

func (g *Game) GetPlayer(c core.Color) *core.Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[c]
}

// Moves returns a copy of the played moves
func (g *Game) Moves() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	moves := make([]string, len(g.moves))
	copy(moves, g.moves)
	return moves
}

func (g *Game) MoveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.moves)
}

func (g *Game) State() core.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) LastResult() *MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastResult
}

// Render returns the ASCII board, marking the destinations in marked
func (g *Game) Render(marked core.MoveSet) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Render(marked)
}

// PieceAt returns the occupant of an algebraic square
func (g *Game) PieceAt(square string) (core.Piece, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.PieceAt(square)
}
