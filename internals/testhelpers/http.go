package testhelpers

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	helper "nyumbasmart_backend/internals/helpers"
)

// NewTestApp returns an app whose requests carry caller as the signed-in
// user. uuid.Nil leaves the request anonymous.
func NewTestApp(caller uuid.UUID) (*fiber.App, fiber.Router) {
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		if caller != uuid.Nil {
			c.Locals(helper.LocUserID, caller.String())
		}
		return c.Next()
	})
	return app, admin
}

// Response is the decoded JSON envelope.
type Response struct {
	Status     int            `json:"-"`
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	ErrorCode  string         `json:"error_code"`
	Data       any            `json:"data"`
	Pagination map[string]any `json:"pagination"`
	Errors     map[string]any `json:"errors"`
}

// DataMap returns Data as an object, failing the test otherwise.
func (r Response) DataMap(t *testing.T) map[string]any {
	t.Helper()
	m, ok := r.Data.(map[string]any)
	require.True(t, ok, "data is %T", r.Data)
	return m
}

func DoJSON(t *testing.T, app *fiber.App, method, path string, body any) Response {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := sonic.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := Response{Status: resp.StatusCode}
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	}
	return out
}
