package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/harvest/internal/config"
	"github.com/example/harvest/internal/utils"
)

const testSecret = "guard-test-secret"

func newGuardedApp() *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Use(SessionGuard(cfg))

	whoami := func(c *fiber.Ctx) error {
		username, _ := CurrentUsername(c)
		return c.SendString("hello " + username)
	}
	app.Get("/admin", whoami)
	app.Get("/api/admin/data", whoami)
	app.Post("/api/upload", whoami)
	app.Get("/api/site", whoami)
	app.Get("/administrator", whoami)
	return app
}

func request(t *testing.T, app *fiber.App, method, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestIsProtected(t *testing.T) {
	for _, p := range []string{"/admin", "/admin/", "/admin/products", "/api/admin", "/api/admin/data", "/api/upload", "/API/Admin/data", "/api//admin/data", "/x/../admin",
		"/%61dmin/", "/%61dmin/index.html", "/%2561dmin", "/api/%61dmin/data", "/api/%2575pload", "/%zzadmin"} {
		assert.True(t, IsProtected(p), p)
	}
	for _, p := range []string{"/", "/login", "/administrator", "/api/site", "/api/uploads", "/api/enquiries", "/api/auth/login"} {
		assert.False(t, IsProtected(p), p)
	}
}

func TestIsAPIPath(t *testing.T) {
	assert.True(t, isAPIPath("/api/admin/data"))
	assert.True(t, isAPIPath("/%61pi/admin/data"))
	assert.True(t, isAPIPath("/api/%zz"))
	assert.False(t, isAPIPath("/admin"))
	assert.False(t, isAPIPath("/apiary"))
}

func TestGuardDecodesEscapedPaths(t *testing.T) {
	app := newGuardedApp()

	resp := request(t, app, http.MethodGet, "/%61dmin", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))

	resp = request(t, app, http.MethodGet, "/api/%61dmin/data", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardWithoutCookie(t *testing.T) {
	app := newGuardedApp()

	resp := request(t, app, http.MethodGet, "/api/admin/data", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, body(t, resp))

	resp = request(t, app, http.MethodPost, "/api/upload", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/admin", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	app := newGuardedApp()
	token, err := utils.GenerateTokenAt(testSecret, "admin", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	resp := request(t, app, http.MethodGet, "/api/admin/data", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/admin", token)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestGuardRejectsForeignToken(t *testing.T) {
	app := newGuardedApp()
	token, err := utils.GenerateToken("some-other-secret", "admin", time.Hour)
	require.NoError(t, err)

	resp := request(t, app, http.MethodGet, "/api/admin/data", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/api/admin/data", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardAdmitsFreshToken(t *testing.T) {
	app := newGuardedApp()
	token, err := utils.GenerateToken(testSecret, "admin", time.Hour)
	require.NoError(t, err)

	resp := request(t, app, http.MethodGet, "/api/admin/data", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello admin", body(t, resp))
	assert.Empty(t, resp.Header.Values("Set-Cookie"), "guard must not refresh the session")

	resp = request(t, app, http.MethodGet, "/admin", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardIgnoresPublicPaths(t *testing.T) {
	app := newGuardedApp()

	resp := request(t, app, http.MethodGet, "/api/site", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello ", body(t, resp))

	resp = request(t, app, http.MethodGet, "/administrator", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
