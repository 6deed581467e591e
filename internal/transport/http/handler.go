package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config tunes the HTTP surface
type Config struct {
	// RequestsPerSecond per client IP on /api/v1; 0 disables rate limiting
	RequestsPerSecond int
	// Quiet drops the request logger
	Quiet bool
}

type HTTPHandler struct {
	svc *service.Service
}

func NewHTTPHandler(svc *service.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func NewFiberApp(svc *service.Service, cfg Config) *fiber.App {
	h := NewHTTPHandler(svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  10 * time.Second,
		// long-poll waits up to service.WaitTimeout
		WriteTimeout: service.WaitTimeout + 5*time.Second,
		IdleTimeout:  30 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	if !cfg.Quiet {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	if maxReq := cfg.RequestsPerSecond; maxReq > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:        maxReq,
			Expiration: 1 * time.Second,
			KeyGenerator: func(c *fiber.Ctx) string {
				// X-Forwarded-For first hop, then the remote IP
				if xff := c.Get("X-Forwarded-For"); xff != "" {
					if idx := strings.Index(xff, ","); idx != -1 {
						return strings.TrimSpace(xff[:idx])
					}
					return xff
				}
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
					Error:   "rate limit exceeded",
					Code:    core.ErrCodeRateLimitExceeded,
					Details: fmt.Sprintf("%d requests per second allowed", maxReq),
				})
			},
		}))
	}

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Get("/games/:gameId/moves", h.GetLegalMoves)
	api.Post("/games/:gameId/undo", h.UndoMove)
	api.Get("/games/:gameId/board", h.GetBoard)

	return app
}

// contentTypeValidator ensures POST requests carry JSON
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get(fiber.HeaderContentType)
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrCodeInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrCodeInternalError,
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrCodeGameNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			response.Code = core.ErrCodeInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrCodeRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// sendError maps domain errors to status codes and error codes
func sendError(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	response := core.ErrorResponse{
		Error:   err.Error(),
		Code:    core.ErrCodeInvalidRequest,
		Details: err.Error(),
	}

	switch {
	case errors.Is(err, core.ErrGameNotFound):
		status = fiber.StatusNotFound
		response.Error, response.Code = "game not found", core.ErrCodeGameNotFound
	case errors.Is(err, core.ErrGameExists):
		status = fiber.StatusConflict
		response.Error = "game already exists"
	case errors.Is(err, core.ErrInvalidPosition):
		response.Error, response.Code = "invalid position", core.ErrCodeInvalidPosition
	case errors.Is(err, core.ErrOutOfBounds):
		response.Error, response.Code = "square out of bounds", core.ErrCodeOutOfBounds
	case errors.Is(err, core.ErrNotYourTurn):
		response.Error, response.Code = "not your turn", core.ErrCodeNotYourTurn
	case errors.Is(err, core.ErrGameOver):
		response.Error, response.Code = "game is over", core.ErrCodeGameOver
	case errors.Is(err, core.ErrInvalidMove):
		response.Error, response.Code = "invalid move", core.ErrCodeInvalidMove
	}

	return c.Status(status).JSON(response)
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(core.HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Unix(),
		Games:   h.svc.GameCount(),
		Storage: h.svc.GetStorageHealth(),
	})
}
