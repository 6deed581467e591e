package client

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/service"
	transport "github.com/VideosHosting/Chess/internal/transport/http"

	"github.com/gofiber/fiber/v2"
)

// appTransport routes client requests straight into a fiber app
type appTransport struct {
	app *fiber.App
}

func (t appTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.app.Test(req, 5000)
}

func newTestClient(t *testing.T) (*Client, *service.Service) {
	t.Helper()
	svc := service.New(nil)
	t.Cleanup(func() { svc.Close() })
	app := transport.NewFiberApp(svc, transport.Config{Quiet: true})

	c := New("http://chessd.test/")
	c.HTTPClient = &http.Client{Transport: appTransport{app: app}}
	return c, svc
}

func TestClientGameFlow(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	game, err := c.CreateGame(ctx, &core.CreateGameRequest{White: core.PlayerConfig{Name: "Ann"}})
	if err != nil {
		t.Fatalf("CreateGame() error = %v", err)
	}
	if game.Turn != "w" || game.Players.White.Name != "Ann" {
		t.Errorf("created game = %+v", game)
	}

	legal, err := c.LegalMoves(ctx, game.GameID, "b1")
	if err != nil {
		t.Fatalf("LegalMoves() error = %v", err)
	}
	if legal.Piece != "white knight" || len(legal.Moves) != 2 {
		t.Errorf("b1 moves = %+v", legal)
	}

	after, err := c.MakeMove(ctx, game.GameID, "e2e4")
	if err != nil {
		t.Fatalf("MakeMove() error = %v", err)
	}
	if after.Turn != "b" || len(after.Moves) != 1 {
		t.Errorf("after move = %+v", after)
	}

	board, err := c.GetBoard(ctx, game.GameID, "g8")
	if err != nil {
		t.Fatalf("GetBoard() error = %v", err)
	}
	if board.FEN != after.FEN || !strings.Contains(board.Board, "*") {
		t.Errorf("board = %+v", board)
	}

	undone, err := c.UndoMoves(ctx, game.GameID, 0)
	if err != nil {
		t.Fatalf("UndoMoves() error = %v", err)
	}
	if undone.FEN != game.FEN || len(undone.Moves) != 0 {
		t.Errorf("after undo = %+v", undone)
	}

	if err := c.DeleteGame(ctx, game.GameID); err != nil {
		t.Fatalf("DeleteGame() error = %v", err)
	}
	if _, err := c.GetGame(ctx, game.GameID); !IsCode(err, core.ErrCodeGameNotFound) {
		t.Errorf("GetGame() after delete error = %v, want %s", err, core.ErrCodeGameNotFound)
	}
}

func TestClientErrors(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	game, err := c.CreateGame(ctx, &core.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		call func() error
		code string
	}{
		{"bad position", func() error {
			_, err := c.CreateGame(ctx, &core.CreateGameRequest{Position: "8/8 w"})
			return err
		}, core.ErrCodeInvalidPosition},
		{"wrong side", func() error {
			_, err := c.MakeMove(ctx, game.GameID, "e7e5")
			return err
		}, core.ErrCodeNotYourTurn},
		{"illegal move", func() error {
			_, err := c.MakeMove(ctx, game.GameID, "e2e5")
			return err
		}, core.ErrCodeInvalidMove},
		{"unknown game", func() error {
			_, err := c.GetGame(ctx, "0b7c8e8a-3c55-4b51-9a39-4f1b0b5d2f10")
			return err
		}, core.ErrCodeGameNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !IsCode(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if apiErr := err.(*APIError); apiErr.StatusCode < 400 {
				t.Errorf("status = %d", apiErr.StatusCode)
			}
		})
	}
}

func TestClientWaitForMove(t *testing.T) {
	c, svc := newTestClient(t)
	ctx := context.Background()

	game, err := c.CreateGame(ctx, &core.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan *core.GameResponse, 1)
	go func() {
		resp, err := c.WaitForMove(ctx, game.GameID, 0)
		if err != nil {
			t.Errorf("WaitForMove() error = %v", err)
		}
		done <- resp
	}()

	time.Sleep(100 * time.Millisecond)
	if _, err := svc.MakeMove(game.GameID, "d2d4"); err != nil {
		t.Fatal(err)
	}

	select {
	case resp := <-done:
		if resp == nil || len(resp.Moves) != 1 {
			t.Errorf("poll response = %+v", resp)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("poll never returned")
	}
}

func TestClientHealth(t *testing.T) {
	c, _ := newTestClient(t)
	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" || health.Storage != "disabled" {
		t.Errorf("health = %+v", health)
	}
}
