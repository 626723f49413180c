package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"vetcare-api/internal/adapters/http/middleware"
	"vetcare-api/internal/core/domain"
	"vetcare-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var errInvalidID = errors.New("invalid id")

// parseID reads a positive numeric route parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// callerID returns the authenticated user's id. Routes using it always sit
// behind the auth gate, so a miss is a wiring bug.
func callerID(c *fiber.Ctx) (uint, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// writeError maps domain errors onto status codes. Anything unrecognised
// is returned so the app error handler logs it and answers 500.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return response.BadRequest(c, ve.Message)
	case errors.Is(err, domain.ErrInvalidRole):
		return response.BadRequest(c, "Invalid role")
	case errors.Is(err, domain.ErrPetNotOwned):
		return response.BadRequest(c, "Pet not valid for this user")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "insufficient permissions")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, notFoundMsg)
	case errors.Is(err, domain.ErrEmailTaken):
		return response.Conflict(c, "Email already registered")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Only pending appointments can be confirmed")
	default:
		return err
	}
}

// dateLayouts covers RFC 3339 plus what HTML date and datetime-local
// inputs submit
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate parses a client supplied date. Values without an offset are
// taken as UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid date")
}

// flexID accepts an id sent either as a JSON number or as a numeric string,
// as HTML select values arrive
type flexID uint

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return errInvalidID
	}
	*f = flexID(id)
	return nil
}
