package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tzbot/pkg/logger"
	"tzbot/storage"
)

type Store struct {
	db  *gorm.DB
	log logger.ILogger
}

// New opens the SQLite file behind dsn ("sqlite://path", "file:path" or a
// bare path) and creates the users table if needed.
func New(ctx context.Context, dsn string, log logger.ILogger) (storage.IStorage, error) {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if dsn == "" {
		dsn = "tzbot.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log}, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		log.Error("failed to open SQLite", logger.Error(err))
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection serialises writers; SQLite allows a single writer anyway.
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&userRow{}); err != nil {
		sqlDB.Close()
		log.Error("failed to migrate SQLite", logger.Error(err))
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	log.Info("SQLite connected", logger.String("path", dsn))

	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storage.Wrap("ping", err)
	}
	return storage.Wrap("ping", sqlDB.PingContext(ctx))
}

func (s *Store) Reset(ctx context.Context) error {
	return storage.Wrap("reset users", s.db.WithContext(ctx).Exec("DELETE FROM users").Error)
}

func (s *Store) User() storage.IUserStorage { return NewUserRepo(s.db, s.log) }

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

type gormWriter struct {
	log logger.ILogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warning(fmt.Sprintf(format, args...), logger.String("component", "gorm"))
}
