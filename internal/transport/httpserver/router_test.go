package httpserver

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vending-content-service/internal/transport/httpserver/dto"
)

// TestErrorHandler_CodeFollowsStatus: the fallback handler emits the same
// JSON error codes the route handlers use, including NOT_FOUND for
// unregistered paths.
func TestErrorHandler_CodeFollowsStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler(zap.NewNop())})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.ErrBadRequest
	})
	app.Get("/upstream-down", func(c *fiber.Ctx) error {
		return fiber.ErrBadGateway
	})

	cases := []struct {
		method, path string
		status       int
		code         string
	}{
		{"GET", "/no-such-route", fiber.StatusNotFound, "NOT_FOUND"},
		{"POST", "/bad", fiber.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"GET", "/bad", fiber.StatusBadRequest, "BAD_REQUEST"},
		{"GET", "/upstream-down", fiber.StatusBadGateway, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var payload dto.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &payload), tc.path)
		assert.Equal(t, tc.code, payload.Code, tc.path)
		assert.NotEmpty(t, payload.Error, tc.path)
	}
}
