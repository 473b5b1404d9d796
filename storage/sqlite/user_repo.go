package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tzbot/pkg/logger"
	"tzbot/pkg/models"
	"tzbot/storage"
)

type userRow struct {
	ID         uint  `gorm:"primaryKey"`
	ExternalID int64 `gorm:"uniqueIndex;not null"`
	Username   *string
	FirstName  string `gorm:"not null"`
	LastName   *string
	Timezone   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (userRow) TableName() string { return "users" }

type userRepo struct {
	db  *gorm.DB
	log logger.ILogger
}

func NewUserRepo(db *gorm.DB, log logger.ILogger) storage.IUserStorage {
	return &userRepo{db: db, log: log}
}

func (r *userRepo) Upsert(ctx context.Context, u *models.UserPreference) error {
	row := userRow{
		ExternalID: u.ExternalID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Timezone:   u.Timezone,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "timezone", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		r.log.Error("failed to upsert user", logger.Int64("external_id", u.ExternalID), logger.Error(err))
		return storage.Wrap("upsert user", err)
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, externalID int64) (*models.UserPreference, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.Wrap("get user", storage.ErrNotFound)
		}
		r.log.Error("failed to get user", logger.Error(err))
		return nil, storage.Wrap("get user", err)
	}
	return &models.UserPreference{
		ExternalID: row.ExternalID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Username:   row.Username,
		Timezone:   row.Timezone,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (r *userRepo) GetTotalUsers(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRow{}).Count(&count).Error
	return int(count), storage.Wrap("count users", err)
}
