package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	authutils "techscreen-backend/lib/utils/auth-utils"
	"techscreen-backend/models"
)

const testSecret = "test-secret"

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(AuthorizationRequired(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c) + "|" + string(GetUserRole(c)))
	})
	app.Get("/admin", AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func bearer(t *testing.T, userID string, role models.UserRole) string {
	token, err := authutils.GetToken(authutils.TokenConfig{Secret: testSecret, Expire: time.Hour}, userID, "Test", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func readBody(t *testing.T, app *fiber.App, path, auth string) (int, string) {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthorizationRequired(t *testing.T) {
	app := newAuthApp()

	t.Run(`missing token`, func(t *testing.T) {
		status, body := readBody(t, app, "/me", "")
		require.Equal(t, fiber.StatusUnauthorized, status)
		require.Contains(t, body, `"status":"fail"`)
	})

	t.Run(`wrong signature`, func(t *testing.T) {
		token, err := authutils.GetToken(authutils.TokenConfig{Secret: "other", Expire: time.Hour}, "u", "T", models.UserRoleUser)
		require.NoError(t, err)
		status, _ := readBody(t, app, "/me", "Bearer "+token)
		require.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run(`valid token exposes claims`, func(t *testing.T) {
		status, body := readBody(t, app, "/me", bearer(t, "user-7", models.UserRoleUser))
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, "user-7|user", body)
	})
}

func TestAuthorizationRequiredWithoutSecret(t *testing.T) {
	app := fiber.New()
	app.Use(AuthorizationRequired(""))
	app.Get("/admin", AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run(`token signed with empty key is rejected`, func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  "intruder",
			"role": string(models.UserRoleAdmin),
			"exp":  time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(""))
		require.NoError(t, err)
		status, body := readBody(t, app, "/admin", "Bearer "+token)
		require.Equal(t, fiber.StatusUnauthorized, status)
		require.Contains(t, body, "jwt secret is not configured")
	})

	t.Run(`missing token`, func(t *testing.T) {
		status, _ := readBody(t, app, "/admin", "")
		require.Equal(t, fiber.StatusUnauthorized, status)
	})
}

func TestAdminRequired(t *testing.T) {
	app := newAuthApp()

	t.Run(`user is forbidden`, func(t *testing.T) {
		status, _ := readBody(t, app, "/admin", bearer(t, "user-7", models.UserRoleUser))
		require.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run(`admin passes`, func(t *testing.T) {
		status, _ := readBody(t, app, "/admin", bearer(t, "root", models.UserRoleAdmin))
		require.Equal(t, fiber.StatusOK, status)
	})
}

func TestGetUserIDWithoutToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetUserID(c)) })
	status, body := readBody(t, app, "/", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, models.SystemUser, body)
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(4))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("too long")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("ok")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

type recordingMailer struct {
	mu       sync.Mutex
	subjects []string
	done     chan struct{}
}

func (r *recordingMailer) SendEMail(_, subject, _ string) error {
	r.mu.Lock()
	r.subjects = append(r.subjects, subject)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *recordingMailer) IsConfigured() bool { return true }

func TestErrNotify(t *testing.T) {
	mailer := &recordingMailer{done: make(chan struct{}, 1)}
	app := fiber.New()
	app.Use(ErrNotify(mailer, "ops@example.com"))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "db down"})
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)

	select {
	case <-mailer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Equal(t, []string{"techscreen: 500 on GET /boom"}, mailer.subjects)
}
