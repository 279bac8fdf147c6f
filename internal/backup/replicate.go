package backup

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/harvest/internal/catalog"
	"github.com/example/harvest/internal/models"
)

const messageBatchSize = 200

// Report summarises a Replicate run.
type Report struct {
	Products        int
	Users           int
	Messages        int
	MessagesSkipped bool
}

// Replicate copies src into dst. The catalog is snapshot-replaced, admin
// users are upserted by username and messages are copied only while the
// target log is still empty, so re-running never duplicates enquiries.
func Replicate(ctx context.Context, src, dst *gorm.DB) (Report, error) {
	var report Report

	data, err := catalog.NewStore(src).Load(ctx)
	if err != nil {
		return report, fmt.Errorf("read source catalog: %w", err)
	}
	if err := catalog.NewStore(dst).Save(ctx, *data); err != nil {
		return report, fmt.Errorf("write target catalog: %w", err)
	}
	report.Products = len(data.Products)

	var users []models.AdminUser
	if err := src.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return report, fmt.Errorf("read source users: %w", err)
	}
	for _, u := range users {
		row := models.AdminUser{Username: u.Username, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
		if err := dst.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
		}).Create(&row).Error; err != nil {
			return report, fmt.Errorf("upsert user %q: %w", u.Username, err)
		}
		report.Users++
	}

	var existing int64
	if err := dst.WithContext(ctx).Model(&models.Message{}).Count(&existing).Error; err != nil {
		return report, fmt.Errorf("count target messages: %w", err)
	}
	if existing > 0 {
		report.MessagesSkipped = true
		zap.L().Warn("target already has messages, skipping message copy", zap.Int64("existing", existing))
		return report, nil
	}

	var messages []models.Message
	if err := src.WithContext(ctx).Order("id asc").Find(&messages).Error; err != nil {
		return report, fmt.Errorf("read source messages: %w", err)
	}
	for i := range messages {
		messages[i].ID = 0
	}
	if len(messages) > 0 {
		if err := dst.WithContext(ctx).CreateInBatches(&messages, messageBatchSize).Error; err != nil {
			return report, fmt.Errorf("copy messages: %w", err)
		}
	}
	report.Messages = len(messages)

	zap.L().Info("replication finished",
		zap.Int("products", report.Products),
		zap.Int("users", report.Users),
		zap.Int("messages", report.Messages),
	)
	return report, nil
}
