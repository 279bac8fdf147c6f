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

	from := flag.String("from", "sqlite://harvest.db", "source database URL")
	to := flag.String("to", cfg.DatabaseURL, "target database URL")
	flag.Parse()

	if err := utils.InitLogger(cfg.IsProduction(), cfg.LogFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer utils.SyncLogger()

	if *from == *to {
		zap.L().Fatal("source and target are the same database", zap.String("url", *from))
	}

	src, err := database.Open(*from)
	if err != nil {
		zap.L().Fatal("failed to open source database", zap.Error(err))
	}
	if err := database.Migrate(src); err != nil {
		zap.L().Fatal("failed to migrate source database", zap.Error(err))
	}

	dst, err := database.Open(*to)
	if err != nil {
		zap.L().Fatal("failed to open target database", zap.Error(err))
	}
	if err := database.Migrate(dst); err != nil {
		zap.L().Fatal("failed to migrate target database", zap.Error(err))
	}

	report, err := backup.Replicate(context.Background(), src, dst)
	if err != nil {
		zap.L().Fatal("replication failed", zap.Error(err))
	}

	zap.L().Info("migration complete",
		zap.Int("products", report.Products),
		zap.Int("users", report.Users),
		zap.Int("messages", report.Messages),
		zap.Bool("messages_skipped", report.MessagesSkipped),
	)
}
