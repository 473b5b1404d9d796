// Package backend picks a storage implementation from a database URL.
package backend

import (
	"context"
	"strings"

	"tzbot/pkg/logger"
	"tzbot/storage"
	"tzbot/storage/postgres"
	"tzbot/storage/sqlite"
)

type Kind string

const (
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// Detect treats postgres:// and postgresql:// URLs as Postgres and anything
// else as a SQLite path.
func Detect(url string) Kind {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return KindPostgres
	}
	return KindSQLite
}

func Open(ctx context.Context, url string, log logger.ILogger) (storage.IStorage, error) {
	switch Detect(url) {
	case KindPostgres:
		return postgres.New(ctx, url, log)
	default:
		return sqlite.New(ctx, url, log)
	}
}
