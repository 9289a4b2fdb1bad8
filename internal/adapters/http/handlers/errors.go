package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// handleError maps service errors onto HTTP responses
func handleError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.ValidationFailed(c, verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, domain.ErrInactiveAccount):
		return response.Forbidden(c, "Account is inactive")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	default:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, "An unexpected error occurred")
	}
}

// bind parses the JSON body into dst and validates it
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewValidation("body: invalid request body")
	}
	return validate.Struct(dst)
}

// paramID reads a positive integer path parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewValidation(name + ": must be a positive integer")
	}
	return uint(id), nil
}

// queryUint reads an optional positive integer query parameter (0 when absent)
func queryUint(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, domain.NewValidation(name + ": must be a positive integer")
	}
	return uint(v), nil
}

// queryBool reads an optional boolean query parameter
func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidation(name + ": must be true or false")
	}
	return &v, nil
}

// queryTime reads an optional RFC 3339 timestamp or YYYY-MM-DD date (midnight UTC)
func queryTime(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	return nil, domain.NewValidation(name + ": must be YYYY-MM-DD or RFC 3339")
}
