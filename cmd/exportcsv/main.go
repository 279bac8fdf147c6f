package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/example/harvest/internal/backup"
	"github.com/example/harvest/internal/config"
	"github.com/example/harvest/internal/database"
	"github.com/example/harvest/internal/utils"
)

func main() {
	cfg := config.Load()

	out := flag.String("out", "./exports", "directory the CSV files are written to")
	dsn := flag.String("database", cfg.DatabaseURL, "database URL to export")
	flag.Parse()

	if err := utils.InitLogger(cfg.IsProduction(), cfg.LogFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer utils.SyncLogger()

	db := database.Connect(*dsn)
	defer database.Close()

	written, err := backup.ExportCSV(context.Background(), db, *out)
	if err != nil {
		zap.L().Fatal("export failed", zap.Error(err))
	}

	zap.L().Info("export complete", zap.String("dir", *out), zap.Int("tables", len(written)))
}
