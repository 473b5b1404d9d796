package storage

import (
	"context"

	"tzbot/pkg/models"
)

type IStorage interface {
	User() IUserStorage
	Ping(ctx context.Context) error
	// Reset removes every user row. Only administrative tooling calls it.
	Reset(ctx context.Context) error
	Close()
}

type IUserStorage interface {
	// Upsert inserts the preference or, when ExternalID already exists,
	// overwrites first_name, last_name, username and timezone in one atomic
	// statement. Concurrent calls for the same id never create a second row.
	Upsert(ctx context.Context, user *models.UserPreference) error
	Get(ctx context.Context, externalID int64) (*models.UserPreference, error)
	GetTotalUsers(ctx context.Context) (int, error)
}
