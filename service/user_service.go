package service

import (
	"context"

	"tzbot/pkg/logger"
	"tzbot/pkg/models"
	"tzbot/storage"
)

type UserService interface {
	// SetTimezone creates or refreshes the sender's preference with tz.
	SetTimezone(ctx context.Context, sender models.Sender, tz string) error
	Get(ctx context.Context, externalID int64) (*models.UserPreference, error)
}

type userService struct {
	stg storage.IUserStorage
	log logger.ILogger
}

func NewUserService(stg storage.IStorage, log logger.ILogger) UserService {
	return &userService{
		stg: stg.User(),
		log: log,
	}
}

func (s *userService) SetTimezone(ctx context.Context, sender models.Sender, tz string) error {
	return s.stg.Upsert(ctx, &models.UserPreference{
		ExternalID: sender.ID,
		FirstName:  sender.FirstName,
		LastName:   sender.LastName,
		Username:   sender.Username,
		Timezone:   &tz,
	})
}

func (s *userService) Get(ctx context.Context, externalID int64) (*models.UserPreference, error) {
	return s.stg.Get(ctx, externalID)
}
