package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/utility-service/internal/observability"
	apperrors "github.com/spec-kit/utility-service/pkg/util"
)

func newMiddlewareApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	return app, metrics
}

func perform(t *testing.T, app *fiber.App, target string) (int, map[string]string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func TestErrorMiddleware_MapsTaxonomy(t *testing.T) {
	app, _ := newMiddlewareApp(t)
	app.Get("/validation", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("user_id is required")
	})
	app.Get("/reference", func(c *fiber.Ctx) error {
		return apperrors.NewInvalidReference("Invalid issue_type_id")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Issue not found")
	})
	app.Get("/opaque", func(c *fiber.Ctx) error {
		return errors.New("connection refused")
	})

	status, body := perform(t, app, "/validation")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "user_id is required", body["error"])

	status, body = perform(t, app, "/reference")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid issue_type_id", body["error"])

	status, body = perform(t, app, "/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Issue not found", body["error"])

	// raw errors never leak their detail
	status, body = perform(t, app, "/opaque")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["error"])
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app, _ := newMiddlewareApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	status, body := perform(t, app, "/panic")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["error"])
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	app, metrics := newMiddlewareApp(t)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, int64(1), metrics.RequestCount("/ok", http.MethodGet, http.StatusOK))
}

func TestRequestID_AvailableToHandlers(t *testing.T) {
	app, _ := newMiddlewareApp(t)
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(observability.RequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/id", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, string(raw))
	assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), string(raw))
}
