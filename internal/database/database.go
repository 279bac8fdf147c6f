package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/example/harvest/internal/models"
)

const (
	sqlitePrefix  = "sqlite://"
	sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

var db *gorm.DB

// Connect initializes the process-wide database handle and runs migrations.
func Connect(databaseURL string) *gorm.DB {
	if db != nil {
		return db
	}

	conn, err := Open(databaseURL)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := Migrate(conn); err != nil {
		zap.L().Fatal("database migration failed", zap.Error(err))
	}

	db = conn
	return db
}

// Close releases the process-wide handle.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

// IsPostgres reports whether the URL points at PostgreSQL.
func IsPostgres(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}

// Open connects to PostgreSQL or SQLite depending on the URL scheme.
// Anything that is not a postgres URL is treated as a SQLite path.
func Open(databaseURL string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	if IsPostgres(databaseURL) {
		if err := ensureDatabase(databaseURL); err != nil {
			return nil, fmt.Errorf("ensure database: %w", err)
		}

		conn, err := gorm.Open(postgres.Open(databaseURL), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		return conn, nil
	}

	dsn := sqliteDSN(databaseURL)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serialises writers; one connection keeps transactions and
	// in-memory databases coherent.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	conn, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn, Conn: sqlDB}, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return conn, nil
}

// Migrate creates or updates every table. Parents are listed before children
// so foreign keys resolve.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.ConfigEntry{},
		&models.Product{},
		&models.SubProduct{},
		&models.Variety{},
		&models.AdminUser{},
		&models.Message{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

func sqliteDSN(databaseURL string) string {
	dsn := strings.TrimPrefix(databaseURL, sqlitePrefix)
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

func ensureDatabase(dsn string) error {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	zap.L().Info("creating database", zap.String("name", dbName))
	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
