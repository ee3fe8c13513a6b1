package fiberlog

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	return logger, buf
}

func TestNew(t *testing.T) {
	t.Run(`logs configured tags`, func(t *testing.T) {
		logger, buf := newTestLogger()
		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagStatus, TagMethod, TagPath, TagRequestID, "unknown"}}))
		app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

		req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "abc-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		out := buf.String()
		require.Contains(t, out, `"status":200`)
		require.Contains(t, out, `"method":"GET"`)
		require.Contains(t, out, `"path":"/ping"`)
		require.Contains(t, out, `"request_id":"abc-1"`)
		require.Contains(t, out, `"level":"info"`)
		require.NotContains(t, out, "unknown")
	})

	t.Run(`client errors are warnings`, func(t *testing.T) {
		logger, buf := newTestLogger()
		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagStatus}}))
		app.Get("/bad", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadRequest) })

		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/bad", nil))
		require.NoError(t, err)
		require.Contains(t, buf.String(), `"level":"warning"`)
	})

	t.Run(`skipped paths log at debug`, func(t *testing.T) {
		logger, buf := newTestLogger()
		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagStatus}, SkipPaths: []string{"/health"}}))
		app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
		require.NoError(t, err)
		require.Empty(t, buf.String())
	})
}
