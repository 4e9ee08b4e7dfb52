package service

import (
	"errors"

	"github.com/Dan9191/deploy-mock/internal/repository"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound    = repository.ErrUserNotFound
	ErrProjectNotFound = repository.ErrProjectNotFound
	ErrFileNotFound    = repository.ErrFileNotFound
)
