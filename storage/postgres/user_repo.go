package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tzbot/pkg/logger"
	"tzbot/pkg/models"
	"tzbot/storage"
)

// querier is the subset of *pgxpool.Pool the repo uses; a pgx.Tx fits too.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type userRepo struct {
	db  querier
	log logger.ILogger
}

func NewUserRepo(db querier, log logger.ILogger) storage.IUserStorage {
	return &userRepo{db: db, log: log}
}

func (r *userRepo) Upsert(ctx context.Context, u *models.UserPreference) error {
	query := `
		INSERT INTO users (external_id, username, first_name, last_name, timezone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_id) DO UPDATE
		SET username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, u.ExternalID, u.Username, u.FirstName, u.LastName, u.Timezone)
	if err != nil {
		r.log.Error("failed to upsert user", logger.Int64("external_id", u.ExternalID), logger.Error(err))
		return storage.Wrap("upsert user", err)
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, externalID int64) (*models.UserPreference, error) {
	var u models.UserPreference
	query := `SELECT external_id, first_name, last_name, username, timezone, created_at, updated_at FROM users WHERE external_id = $1`
	err := r.db.QueryRow(ctx, query, externalID).Scan(
		&u.ExternalID, &u.FirstName, &u.LastName, &u.Username, &u.Timezone, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.Wrap("get user", storage.ErrNotFound)
		}
		r.log.Error("failed to get user", logger.Error(err))
		return nil, storage.Wrap("get user", err)
	}
	return &u, nil
}

func (r *userRepo) GetTotalUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&count)
	return count, storage.Wrap("count users", err)
}
