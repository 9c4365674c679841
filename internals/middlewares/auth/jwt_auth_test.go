package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "nyumbasmart_backend/internals/helpers"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func newApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthJWT(opts), func(c *fiber.Ctx) error {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		return c.SendString(id.String())
	})
	return app
}

func TestAuthJWT(t *testing.T) {
	user := uuid.New()
	future := time.Now().Add(time.Hour).Unix()
	app := newApp(AuthJWTOpts{Secret: secret, AllowCookieFallback: true})

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"valid sub", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": user.String(), "exp": future}), "", http.StatusOK},
		{"valid id claim", "bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), jwt.MapClaims{"id": user.String(), "exp": future}), "", http.StatusOK},
		{"cookie fallback", "", sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": user.String(), "exp": future}), http.StatusOK},
		{"wrong secret", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": user.String(), "exp": future}), "", http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": user.String(), "exp": time.Now().Add(-time.Minute).Unix()}), "", http.StatusUnauthorized},
		{"no exp", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": user.String()}), "", http.StatusUnauthorized},
		{"non uuid subject", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "admin", "exp": future}), "", http.StatusUnauthorized},
		{"none alg", "Bearer " + sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": user.String(), "exp": future}), "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tc.cookie})
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestAuthJWT_Blacklist(t *testing.T) {
	revoked := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"sub": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix(),
	})
	app := newApp(AuthJWTOpts{
		Secret: secret,
		BlacklistChecker: func(_ context.Context, raw string) (bool, error) {
			return raw == revoked, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+revoked)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWT_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { AuthJWT(AuthJWTOpts{}) })
}

func TestRedisBlacklist_NilClient(t *testing.T) {
	assert.Nil(t, RedisBlacklist(nil))
}
