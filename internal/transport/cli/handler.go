package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VideosHosting/Chess/internal/cli"
	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/service"
	"github.com/VideosHosting/Chess/internal/transport"
)

type CLIHandler struct {
	svc    *service.Service
	view   transport.View
	gameID string
}

func New(svc *service.Service, view transport.View) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Run reads and processes commands until quit or end of input
func (h *CLIHandler) Run() {
	for {
		cmd, err := h.view.GetCommand(h.getPrompt())
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

// getPrompt shows the side to move and a check marker
func (h *CLIHandler) getPrompt() string {
	if h.gameID == "" {
		return "> "
	}
	g, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return "> "
	}
	if g.State() != core.StateOngoing {
		return fmt.Sprintf("[%s]> ", g.State())
	}
	if g.SideInCheck() {
		return fmt.Sprintf("[%s+]> ", g.NextTurn())
	}
	return fmt.Sprintf("[%s]> ", g.NextTurn())
}

// ProcessCommand handles one command; it returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdNew:
		h.startGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <position>")
			return true
		}
		h.startGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		if !h.requireGame() {
			return true
		}

		result, err := h.svc.MakeMove(h.gameID, cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return true
		}

		h.view.ShowMove(result)
		h.showBoard(nil)

		if result.GameState != core.StateOngoing {
			h.view.ShowGameOver(result.GameState)
		}

	case cli.CmdMoves:
		if !h.requireGame() {
			return true
		}
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: moves <square>")
			return true
		}

		moves, piece, err := h.svc.LegalMoves(h.gameID, cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.showBoard(moves)
		h.view.ShowLegalMoves(piece, moves)

	case cli.CmdUndo:
		if !h.requireGame() {
			return true
		}

		count := 1
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil || n < 1 {
				h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
				return true
			}
			count = n
		}

		if err := h.svc.UndoMoves(h.gameID, count); err != nil {
			h.view.ShowError(err)
			return true
		}
		if count == 1 {
			h.view.ShowMessage("Move undone")
		} else {
			h.view.ShowMessage(fmt.Sprintf("%d moves undone", count))
		}
		h.showBoard(nil)

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(strings.ToLower(cmd.Args[0]))
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if h.gameID != "" {
			h.showBoard(nil)
		}

	case cli.CmdHistory:
		if !h.requireGame() {
			return true
		}
		g, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowGameHistory(g)

	case cli.CmdBoard:
		if !h.requireGame() {
			return true
		}
		h.showBoard(nil)

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) requireGame() bool {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <position>'.")
		return false
	}
	return true
}

func (h *CLIHandler) showBoard(marked core.MoveSet) {
	g, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.DisplayBoard(g, marked)
}

// startGame replaces the current game with one from position
func (h *CLIHandler) startGame(position string) {
	id := h.svc.GenerateGameID()
	if _, err := h.svc.CreateGame(id, core.PlayerConfig{}, core.PlayerConfig{}, position); err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}

	if h.gameID != "" {
		h.svc.DeleteGame(h.gameID)
	}
	h.gameID = id

	h.view.ShowMessage("Game started.")
	h.showBoard(nil)
}

// GameID returns the active game, or "" before the first game
func (h *CLIHandler) GameID() string {
	return h.gameID
}
