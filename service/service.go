package service

import (
	"tzbot/pkg/logger"
	"tzbot/storage"
)

type IServiceManager interface {
	User() UserService
}

type service struct {
	userService UserService
}

func New(stg storage.IStorage, log logger.ILogger) IServiceManager {
	return &service{
		userService: NewUserService(stg, log),
	}
}

func (s *service) User() UserService {
	return s.userService
}
