package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nyumbasmart_backend/internals/helpers/apperr"
)

// LocUserID is the Locals key the JWT middleware fills with the caller id.
const LocUserID = "user_id"

// GetUserIDFromToken reads the caller id the JWT middleware stored.
// Missing or malformed ids are Unauthorized.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var raw string
	switch t := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, apperr.Unauthorized("not signed in")
		}
		return t, nil
	case string:
		raw = t
	case []byte:
		raw = string(t)
	case nil:
		return uuid.Nil, apperr.Unauthorized("not signed in")
	default:
		return uuid.Nil, apperr.Unauthorized("invalid user id in token")
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperr.Unauthorized("not signed in")
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.Unauthorized("invalid user id in token")
	}
	return id, nil
}

// ParseUUIDParam parses a path parameter, InvalidArgument when malformed.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, apperr.InvalidArgument("%s is not a valid id", name)
	}
	return id, nil
}
