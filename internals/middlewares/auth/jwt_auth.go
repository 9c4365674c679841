package auth

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "nyumbasmart_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Secret string
	// return true if the token was revoked
	BlacklistChecker    func(ctx context.Context, rawToken string) (bool, error)
	AllowCookieFallback bool // read the access_token cookie when there is no Bearer header
}

// AuthJWT verifies an HS256/384/512 access token and stores the caller id
// under helper.LocUserID.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := helper.BearerToken(c, o.AllowCookieFallback)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "missing access token")
		}

		if o.BlacklistChecker != nil {
			if black, err := o.BlacklistChecker(c.UserContext(), raw); err == nil && black {
				return helper.JsonError(c, fiber.StatusUnauthorized, "token revoked")
			}
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid token claims")
		}
		if _, ok := claims["exp"]; !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "token has no exp")
		}

		// user id: id, sub, user_id in order of preference
		var userID string
		for _, key := range []string{"id", "sub", "user_id"} {
			if s := strClaim(claims, key); s != "" {
				userID = s
				break
			}
		}
		if _, err := uuid.Parse(userID); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "token has no valid user id")
		}

		c.Locals("jwt_claims", claims)
		c.Locals(helper.LocUserID, userID)
		return c.Next()
	}
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// RedisBlacklist reports a token as revoked when the key
// "revoked_token:<token>" exists. A nil client never revokes.
func RedisBlacklist(client *redis.Client) func(ctx context.Context, rawToken string) (bool, error) {
	if client == nil {
		return nil
	}
	return func(ctx context.Context, rawToken string) (bool, error) {
		ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		n, err := client.Exists(ctx, "revoked_token:"+rawToken).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}
