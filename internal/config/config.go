package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret     = "change-this-secret-before-deploying-the-site"
	defaultAdminPassword = "admin123"
)

// Config holds application configuration values.
type Config struct {
	AppPort       string
	AppEnv        string
	DatabaseURL   string
	JWTSecret     string
	TokenExpires  time.Duration
	CookieSecure  bool
	AdminUsername string
	AdminPassword string
	PublicDir     string
	UploadDir     string
	UploadBaseURL string
	SeedFile      string
	LogFile       string

	TelegramBotToken  string
	TelegramAdminChat string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		AppEnv:            env,
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://harvest.db"),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		TokenExpires:      time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		CookieSecure:      getEnvBool("COOKIE_SECURE", env == "production"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		PublicDir:         getEnv("PUBLIC_DIR", "./public"),
		UploadDir:         getEnv("UPLOAD_DIR", "./public/products"),
		UploadBaseURL:     getEnv("UPLOAD_BASE_URL", "/products"),
		SeedFile:          getEnv("SEED_FILE", "./data/site-data.json"),
		LogFile:           getEnv("LOG_FILE", ""),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChat: getEnv("TELEGRAM_ADMIN_CHAT_ID", ""),
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if cfg.TokenExpires <= 0 {
		log.Fatal("SESSION_TTL_MINUTES must be greater than 0")
	}

	return cfg
}

// UsesDefaultSecrets reports whether the shipped JWT secret or admin
// password are still in effect.
func (c *Config) UsesDefaultSecrets() bool {
	return c.JWTSecret == defaultJWTSecret || c.AdminPassword == defaultAdminPassword
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
