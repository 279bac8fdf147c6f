package handlers

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/harvest/internal/config"
	"github.com/example/harvest/internal/middleware"
	"github.com/example/harvest/internal/models"
	"github.com/example/harvest/internal/utils"
)

const invalidCredentials = "invalid credentials"

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// dummyPasswordHash is compared against when the username is unknown so both
// failure paths pay for one bcrypt comparison.
func dummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("harvest-unknown-user")
	})
	return dummyHash
}

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks admin credentials and sets the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username and password are required")
	}

	var user models.AdminUser
	err := h.db.WithContext(c.UserContext()).Where("username = ?", req.Username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CheckPassword(dummyPasswordHash(), req.Password)
		return h.reject(req.Username)
	}
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return h.reject(req.Username)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.Username, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TokenExpires / time.Second),
		Expires:  time.Now().Add(h.cfg.TokenExpires),
		Secure:   h.cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	utils.RecordLoginAttempt(true)
	zap.L().Info("admin logged in", zap.String("username", user.Username))

	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) reject(username string) error {
	utils.RecordLoginAttempt(false)
	zap.L().Warn("admin login failed", zap.String("username", username))
	return fiber.NewError(fiber.StatusUnauthorized, invalidCredentials)
}

// Logout clears the session cookie. The token itself stays valid until it
// expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   h.cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"success": true})
}
