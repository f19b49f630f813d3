package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"realagent/internal/errors"
	"realagent/internal/model"
	"realagent/internal/repository"
)

// AuthService verifies credentials. Authentication is stateless: no token or
// session is produced, each login stands alone.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo repository.UserRepository) AuthService {
	return &authService{repo: repo, now: time.Now}
}

// Authenticate checks email and password and, on success, records the login
// time. Every failure path returns ErrInvalidCredentials so the response
// never reveals whether the email exists or the account is disabled.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		return nil, errors.ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, errors.ErrInvalidCredentials
	}

	at := s.now()
	if err := s.repo.TouchLastLogin(ctx, user.UserID, at); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &at

	return user, nil
}
