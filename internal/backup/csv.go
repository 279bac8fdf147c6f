// Package backup holds the offline tools: CSV export of every table and
// replication of one database into another.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/harvest/internal/models"
)

// ExportCSV writes one CSV file per non-empty table into dir and returns the
// number of rows written per table. Password hashes are never exported.
func ExportCSV(ctx context.Context, db *gorm.DB, dir string) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	written := make(map[string]int)
	exports := []struct {
		table string
		run   func() (int, error)
	}{
		{"config", func() (int, error) { return exportTable[models.ConfigEntry](ctx, db, dir, "config", "key asc") }},
		{"users", func() (int, error) { return exportTable[models.AdminUser](ctx, db, dir, "users", "id asc") }},
		{"products", func() (int, error) { return exportTable[models.Product](ctx, db, dir, "products", "position asc, slug asc") }},
		{"sub_products", func() (int, error) {
			return exportTable[models.SubProduct](ctx, db, dir, "sub_products", "parent_slug asc, position asc")
		}},
		{"varieties", func() (int, error) { return exportTable[models.Variety](ctx, db, dir, "varieties", "id asc") }},
		{"messages", func() (int, error) { return exportTable[models.Message](ctx, db, dir, "messages", "id asc") }},
	}

	for _, e := range exports {
		n, err := e.run()
		if err != nil {
			return written, fmt.Errorf("export %s: %w", e.table, err)
		}
		if n == 0 {
			zap.L().Info("skipping empty table", zap.String("table", e.table))
			continue
		}
		written[e.table] = n
		zap.L().Info("exported table", zap.String("table", e.table), zap.Int("rows", n))
	}

	return written, nil
}

func exportTable[T any](ctx context.Context, db *gorm.DB, dir, table, order string) (int, error) {
	var rows []T
	if err := db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	f, err := os.Create(filepath.Join(dir, table+".csv"))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return 0, err
	}
	return len(rows), f.Sync()
}
