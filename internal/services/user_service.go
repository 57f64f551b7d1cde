package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/repositories"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetOrCreateByUsername returns the user with the given username, creating
// the row on first sight. Identity itself is managed elsewhere; this system
// only needs a stable user record to reference.
func (s *UserService) GetOrCreateByUsername(username string) (*models.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	user, err := s.userRepo.GetByUsername(username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user = &models.User{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}
