package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/harvest/internal/models"
	"github.com/example/harvest/internal/utils"
)

// SeedAdmin creates the bootstrap administrator when no account exists yet.
// It reports whether an account was created.
func SeedAdmin(ctx context.Context, conn *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := conn.WithContext(ctx).Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admin users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash bootstrap password: %w", err)
	}

	user := models.AdminUser{Username: username, PasswordHash: hash}
	if err := conn.WithContext(ctx).Create(&user).Error; err != nil {
		return false, fmt.Errorf("create bootstrap admin: %w", err)
	}

	zap.L().Warn("created default admin account; rotate its password before going live",
		zap.String("username", username))
	return true, nil
}
