package http

import (
	"context"
	"strconv"

	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/game"

	"github.com/gofiber/fiber/v2"
)

// CreateGame starts a game from the standard setup or a supplied position
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateGameRequest](c)
	if err != nil {
		return err
	}

	gameID := h.svc.GenerateGameID()
	g, err := h.svc.CreateGame(gameID, req.White, req.Black, req.Position)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(gameID, g))
}

// GetGame returns the game state. With wait=true it long-polls until the
// move count differs from moveCount.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return invalidGameID(c)
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return sendError(c, err)
	}

	if c.Query("wait", "false") != "true" {
		return c.JSON(buildGameResponse(gameID, g))
	}

	moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
	if err != nil {
		moveCount = -1
	}

	// Already changed, answer immediately
	if moveCount != g.MoveCount() {
		return c.JSON(buildGameResponse(gameID, g))
	}

	ctx, cancel := context.WithCancel(c.Context())
	defer cancel()
	notify := h.svc.RegisterWait(ctx, gameID, moveCount)

	select {
	case <-notify:
		// Game might have been deleted meanwhile
		g, err := h.svc.GetGame(gameID)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(buildGameResponse(gameID, g))

	case <-ctx.Done():
		// Client disconnected
		return nil
	}
}

// MakeMove plays a move for the side to move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return invalidGameID(c)
	}

	req, err := validatedBody[core.MoveRequest](c)
	if err != nil {
		return err
	}

	if _, err := h.svc.MakeMove(gameID, req.Move); err != nil {
		return sendError(c, err)
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(buildGameResponse(gameID, g))
}

// GetLegalMoves lists the moves of the piece on ?square=
func (h *HTTPHandler) GetLegalMoves(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return invalidGameID(c)
	}

	square := c.Query("square")
	if square == "" {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "missing square",
			Code:    core.ErrCodeInvalidRequest,
			Details: "query parameter square is required, e.g. ?square=e2",
		})
	}

	moves, piece, err := h.svc.LegalMoves(gameID, square)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(core.LegalMovesResponse{
		Square: piece.Square(),
		Piece:  pieceName(piece),
		Moves:  moves.Strings(),
	})
}

// UndoMove takes back one or more moves
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return invalidGameID(c)
	}

	req, err := validatedBody[core.UndoRequest](c)
	if err != nil {
		return err
	}

	count := req.Count
	if count < 1 {
		count = 1
	}

	if err := h.svc.UndoMoves(gameID, count); err != nil {
		return sendError(c, err)
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(buildGameResponse(gameID, g))
}

// DeleteGame drops a game from memory
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return invalidGameID(c)
	}

	if err := h.svc.DeleteGame(gameID); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns the ASCII board; ?square= marks that piece's moves
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return invalidGameID(c)
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return sendError(c, err)
	}

	var marked core.MoveSet
	if square := c.Query("square"); square != "" {
		marked, _, err = g.LegalMoves(square)
		if err != nil {
			return sendError(c, err)
		}
	}

	return c.JSON(core.BoardResponse{
		FEN:   g.Position(),
		Board: g.Render(marked),
	})
}

func buildGameResponse(gameID string, g *game.Game) core.GameResponse {
	response := core.GameResponse{
		GameID: gameID,
		FEN:    g.Position(),
		Turn:   g.NextTurn().String(),
		State:  g.State().String(),
		Check:  g.SideInCheck(),
		Moves:  g.Moves(),
		Players: core.PlayersResponse{
			White: g.GetPlayer(core.ColorWhite),
			Black: g.GetPlayer(core.ColorBlack),
		},
	}

	if result := g.LastResult(); result != nil {
		response.LastMove = &core.MoveInfo{
			Move:        result.Move,
			PlayerColor: result.PlayerColor.String(),
			Captured:    pieceName(result.Captured),
			Check:       result.Check,
		}
	}

	return response
}

// pieceName returns e.g. "white knight", or "" for an empty square
func pieceName(p core.Piece) string {
	if p.Empty() {
		return ""
	}
	if p.Color == core.ColorBlack {
		return "black " + p.Type.String()
	}
	return "white " + p.Type.String()
}
