package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/VideosHosting/Chess/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

const (
	localValidated     = "validated"
	localValidatedBody = "validatedBody"
)

// validationMiddleware parses and validates JSON bodies, keyed by path and
// method, and stores the result in locals for the handler
func validationMiddleware(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodPost {
		return c.Next()
	}

	path := strings.TrimSuffix(c.Path(), "/")
	var requestType interface{}

	switch {
	case strings.HasSuffix(path, "/games"):
		requestType = &core.CreateGameRequest{}
	case strings.HasSuffix(path, "/moves"):
		requestType = &core.MoveRequest{}
	case strings.HasSuffix(path, "/undo"):
		requestType = &core.UndoRequest{}
	default:
		return c.Next()
	}

	// An empty body stands for the zero request; required tags still apply
	if len(c.Body()) > 0 {
		if err := c.BodyParser(requestType); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "invalid request body",
				Code:    core.ErrCodeInvalidRequest,
				Details: err.Error(),
			})
		}
	}

	if errs := validate.Struct(requestType); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrCodeInvalidRequest,
			Details: describeValidation(errs),
		})
	}

	c.Locals(localValidatedBody, requestType)
	c.Locals(localValidated, true)

	return c.Next()
}

func describeValidation(errs error) string {
	verrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return errs.Error()
	}

	var details strings.Builder
	for _, err := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		unit := ""
		if err.Type().Kind() == reflect.String {
			unit = " characters"
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "len":
			details.WriteString(fmt.Sprintf("%s must be exactly %s%s", err.Field(), err.Param(), unit))
		case "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s%s", err.Field(), err.Param(), unit))
		case "max":
			details.WriteString(fmt.Sprintf("%s must be at most %s%s", err.Field(), err.Param(), unit))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return details.String()
}

// validatedBody returns the request parsed by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (*T, error) {
	if validated, ok := c.Locals(localValidated).(bool); !ok || !validated {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "validation bypass detected")
	}

	req, ok := c.Locals(localValidatedBody).(*T)
	if !ok || req == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "validation data missing")
	}
	return req, nil
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// gameIDParam returns the validated :gameId route parameter
func gameIDParam(c *fiber.Ctx) (string, bool) {
	gameID := c.Params("gameId")
	return gameID, isValidUUID(gameID)
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrCodeInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}
