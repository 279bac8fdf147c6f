package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/harvest/internal/catalog"
	"github.com/example/harvest/internal/database"
	"github.com/example/harvest/internal/models"
)

func openTestDB(t *testing.T, suffix string) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + suffix
	conn, err := database.Open(fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func seedSource(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, catalog.NewStore(db).Save(ctx, catalog.SiteData{
		Contact: catalog.ContactInfo{Email: "a@b.com"},
		Products: []catalog.Product{{
			Details:   catalog.Details{Slug: "rice", Title: "Rice", IsHighDemand: true},
			Varieties: []string{"Basmati"},
			Types:     []catalog.SubProduct{{Details: catalog.Details{Slug: "rice-basmati", Title: "Basmati"}}},
		}},
	}))

	_, err := database.SeedAdmin(ctx, db, "admin", "s3cret-pass")
	require.NoError(t, err)

	note := "hello, world"
	require.NoError(t, db.Create(&models.Message{
		Name: "Ann", Email: "ann@example.com", ProductType: "Rice", Quantity: "1t",
		Destination: "Oslo", Message: &note, CreatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}).Error)
}

func TestExportCSV(t *testing.T) {
	db := openTestDB(t, "src")
	seedSource(t, db)
	dir := filepath.Join(t.TempDir(), "export")

	written, err := ExportCSV(context.Background(), db, dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"config": 1, "users": 1, "products": 1, "sub_products": 1, "varieties": 1, "messages": 1,
	}, written)

	users, err := os.ReadFile(filepath.Join(dir, "users.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(users), "id,username,created_at\n"), string(users))
	assert.NotContains(t, string(users), "$2a$")

	products, err := os.ReadFile(filepath.Join(dir, "products.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(products), "is_high_demand")
	assert.Contains(t, string(products), "rice,0,Rice")
	assert.Contains(t, string(products), ",true")

	messages, err := os.ReadFile(filepath.Join(dir, "messages.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(messages), `"hello, world"`)
}

func TestExportCSVSkipsEmptyTables(t *testing.T) {
	db := openTestDB(t, "src")
	dir := t.TempDir()

	written, err := ExportCSV(context.Background(), db, dir)
	require.NoError(t, err)
	assert.Empty(t, written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReplicate(t *testing.T) {
	src := openTestDB(t, "src")
	dst := openTestDB(t, "dst")
	seedSource(t, src)
	ctx := context.Background()

	report, err := Replicate(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, Report{Products: 1, Users: 1, Messages: 1}, report)

	want, err := catalog.NewStore(src).Load(ctx)
	require.NoError(t, err)
	got, err := catalog.NewStore(dst).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var msg models.Message
	require.NoError(t, dst.First(&msg).Error)
	assert.True(t, msg.CreatedAt.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))

	var srcUser, dstUser models.AdminUser
	require.NoError(t, src.First(&srcUser).Error)
	require.NoError(t, dst.First(&dstUser).Error)
	assert.Equal(t, srcUser.PasswordHash, dstUser.PasswordHash)

	report, err = Replicate(ctx, src, dst)
	require.NoError(t, err)
	assert.True(t, report.MessagesSkipped)

	var messages, users int64
	require.NoError(t, dst.Model(&models.Message{}).Count(&messages).Error)
	require.NoError(t, dst.Model(&models.AdminUser{}).Count(&users).Error)
	assert.EqualValues(t, 1, messages)
	assert.EqualValues(t, 1, users)
}
