package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BearerToken returns the access token from "Authorization: Bearer <token>",
// or from the access_token cookie when allowCookie is set.
func BearerToken(c *fiber.Ctx, allowCookie bool) string {
	fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	if allowCookie {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}
