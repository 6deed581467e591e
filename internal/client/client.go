// Package client is a Go client for the chessd HTTP API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VideosHosting/Chess/internal/core"
)

const defaultTimeout = 30 * time.Second

// APIError carries the server's error body for non-2xx responses
type APIError struct {
	StatusCode int
	Response   core.ErrorResponse
}

func (e *APIError) Error() string {
	r := e.Response
	if r.Details != "" {
		return fmt.Sprintf("%d %s: %s (%s)", e.StatusCode, r.Code, r.Error, r.Details)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, r.Code, r.Error)
}

// IsCode reports whether err is an APIError with the given error code
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Response.Code == code
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Logger traces requests when non-nil
	Logger *log.Logger
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.Logger != nil {
		c.Logger.Printf("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.Response); err != nil || apiErr.Response.Code == "" {
			apiErr.Response = core.ErrorResponse{
				Error: strings.TrimSpace(string(respBody)),
				Code:  http.StatusText(resp.StatusCode),
			}
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func gamePath(gameID string, parts ...string) string {
	return "/api/v1/games/" + url.PathEscape(gameID) + strings.Join(parts, "")
}

func (c *Client) Health(ctx context.Context) (*core.HealthResponse, error) {
	var resp core.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateGame(ctx context.Context, req *core.CreateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/games", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetGame(ctx context.Context, gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.doRequest(ctx, http.MethodGet, gamePath(gameID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitForMove long-polls until the game's move count differs from moveCount,
// the game is deleted, or the server's wait times out
func (c *Client) WaitForMove(ctx context.Context, gameID string, moveCount int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := gamePath(gameID, fmt.Sprintf("?wait=true&moveCount=%d", moveCount))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	return c.doRequest(ctx, http.MethodDelete, gamePath(gameID), nil, nil)
}

func (c *Client) MakeMove(ctx context.Context, gameID, move string) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.doRequest(ctx, http.MethodPost, gamePath(gameID, "/moves"), &core.MoveRequest{Move: move}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LegalMoves lists the destinations of the piece on square
func (c *Client) LegalMoves(ctx context.Context, gameID, square string) (*core.LegalMovesResponse, error) {
	var resp core.LegalMovesResponse
	path := gamePath(gameID, "/moves?square="+url.QueryEscape(square))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UndoMoves(ctx context.Context, gameID string, count int) (*core.GameResponse, error) {
	var resp core.GameResponse
	if err := c.doRequest(ctx, http.MethodPost, gamePath(gameID, "/undo"), &core.UndoRequest{Count: count}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBoard renders the board; a non-empty square marks that piece's moves
func (c *Client) GetBoard(ctx context.Context, gameID, square string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	path := gamePath(gameID, "/board")
	if square != "" {
		path += "?square=" + url.QueryEscape(square)
	}
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
