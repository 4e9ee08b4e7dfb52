package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/deploy-mock/internal/models"
	"github.com/Dan9191/deploy-mock/internal/repository"
	"github.com/sirupsen/logrus"
)

// Service handles business logic
type Service struct {
	repo *repository.Repository
	log  *logrus.Logger
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateUser registers a user. An existing user with the same username is replaced.
func (s *Service) CreateUser(username, password string) *models.User {
	user := s.repo.CreateUser(username, password)
	s.log.Infof("User created: %s (id %s)", user.Username, user.ID)
	return user
}

// Login checks the credentials and returns the user's token
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.repo.FindUserByUsername(username)
	if err != nil {
		s.log.Warnf("Login failed for %q: unknown user", username)
		return "", ErrInvalidCredentials
	}
	if user.Password != password {
		s.log.Warnf("Login failed for %q: wrong password", username)
		return "", ErrInvalidCredentials
	}

	s.log.Infof("User logged in: %s", user.Username)
	return user.ID, nil
}

// ResolveToken returns the user the token belongs to
func (s *Service) ResolveToken(token string) (*models.User, error) {
	user, err := s.repo.FindUserByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	return user, nil
}

// CreateProject creates an empty project for the authenticated user
func (s *Service) CreateProject(ctx context.Context, name string) error {
	user, ok := UserFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	if err := s.repo.CreateProject(user.Username, name); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	s.log.Infof("Project created for user %s: %s", user.Username, name)
	return nil
}

// ListProjects returns every project of the authenticated user
func (s *Service) ListProjects(ctx context.Context) (map[string]*models.Project, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	projects, err := s.repo.ListProjects(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Upload merges files into one of the authenticated user's projects
func (s *Service) Upload(ctx context.Context, projectID string, files map[string]string) error {
	user, ok := UserFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	if err := s.repo.UploadFiles(user.Username, projectID, files); err != nil {
		return fmt.Errorf("failed to upload files: %w", err)
	}

	s.log.Infof("Uploaded %d file(s) to %s/%s", len(files), user.Username, projectID)
	return nil
}

// GetFile returns the content of a file in any user's project.
// Any authenticated caller may read any user's files.
func (s *Service) GetFile(ctx context.Context, username, projectID, key string) (string, error) {
	if _, ok := UserFromContext(ctx); !ok {
		return "", ErrUnauthorized
	}

	content, err := s.repo.GetFile(username, projectID, key)
	if err != nil {
		return "", fmt.Errorf("failed to get file %s/%s/%s: %w", username, projectID, key, err)
	}
	return content, nil
}

// Dump returns the whole store keyed by username
func (s *Service) Dump() map[string]*models.User {
	return s.repo.Dump()
}
