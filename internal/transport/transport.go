// Package transport holds the contracts shared by the user-facing front ends
package transport

import (
	"github.com/VideosHosting/Chess/internal/cli"
	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/game"
)

// View abstracts terminal input and display; *cli.CLI implements it
type View interface {
	GetCommand(prompt string) (*cli.Command, error)
	SetTheme(theme cli.ColorTheme) error
	DisplayBoard(g *game.Game, marked core.MoveSet)
	ShowMessage(msg string)
	ShowError(err error)
	ShowGameHistory(g *game.Game)
	ShowMove(result *game.MoveResult)
	ShowLegalMoves(piece core.Piece, moves core.MoveSet)
	ShowGameOver(state core.State)
	ShowHelp()
}

var _ View = (*cli.CLI)(nil)
