package middleware

import (
	"net/url"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/harvest/internal/config"
	"github.com/example/harvest/internal/utils"
)

const (
	// SessionCookie carries the signed admin session token.
	SessionCookie = "auth_token"

	// LoginPath is where unauthenticated UI requests are sent.
	LoginPath = "/login"

	usernameContextKey = "adminUsername"
)

var protectedPrefixes = []string{"/admin", "/api/admin", "/api/upload"}

// maxUnescapeRounds bounds percent-decoding of nested encodings like %2561.
const maxUnescapeRounds = 4

// IsProtected reports whether requestPath falls under an admin prefix.
// Matching is case-insensitive, percent-decoded and on path-segment
// boundaries, so "/admin/x" and "/%61dmin/x" are protected and
// "/administrator" is not. Paths that cannot be decoded are protected.
func IsProtected(requestPath string) bool {
	p, ok := normalizePath(requestPath)
	if !ok {
		return true
	}
	for _, prefix := range protectedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func isAPIPath(requestPath string) bool {
	p, ok := normalizePath(requestPath)
	if !ok {
		p = strings.ToLower(requestPath)
	}
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// normalizePath decodes requestPath until it is stable, then cleans and
// lower-cases it. ok is false when decoding fails or does not settle.
func normalizePath(requestPath string) (string, bool) {
	decoded := requestPath
	for i := 0; ; i++ {
		next, err := url.PathUnescape(decoded)
		if err != nil {
			return "", false
		}
		if next == decoded {
			break
		}
		if i == maxUnescapeRounds {
			return "", false
		}
		decoded = next
	}
	return strings.ToLower(path.Clean("/" + decoded)), true
}

// SessionGuard rejects requests to protected paths that do not carry a valid
// session cookie: API paths get a 401 JSON body, UI paths a redirect to the
// login page. Valid sessions pass through unchanged.
func SessionGuard(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsProtected(c.Path()) {
			return c.Next()
		}

		token := c.Cookies(SessionCookie)
		if token == "" {
			return deny(c)
		}

		username, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return deny(c)
		}

		c.Locals(usernameContextKey, username)
		return c.Next()
	}
}

func deny(c *fiber.Ctx) error {
	if isAPIPath(c.Path()) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.Redirect(LoginPath, fiber.StatusFound)
}

// CurrentUsername returns the admin bound to the request by SessionGuard.
func CurrentUsername(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals(usernameContextKey).(string)
	return username, ok && username != ""
}
