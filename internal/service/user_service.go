package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"realagent/internal/cache"
	"realagent/internal/errors"
	"realagent/internal/model"
	"realagent/internal/repository"
)

const (
	userCacheTTL = 5 * time.Minute

	// DefaultPageSize is used when the caller supplies no limit.
	DefaultPageSize = 100
	// MaxPageSize caps a single listing response.
	MaxPageSize = 100
)

// CreateUserInput carries the validated fields for a new user.
type CreateUserInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
	IsActive *bool
}

// UserStats aggregates user counts for the statistics endpoint.
type UserStats struct {
	TotalUsers    int64                 `json:"total_users"`
	ActiveUsers   int64                 `json:"active_users"`
	InactiveUsers int64                 `json:"inactive_users"`
	ByRole        repository.RoleCounts `json:"by_role"`
}

// UserService exposes the user domain operations.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]model.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
	UserStats(ctx context.Context) (*UserStats, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CreateUser hashes the plaintext password and persists a new user. The
// plaintext is never stored; only its digest leaves this function.
func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, errors.ErrDuplicateEmail
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: model.HashPassword(input.Password),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index may still fire when two creates race past the
		// existence check; the storage engine is the authority.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user, userCacheTTL)
	return user, nil
}

// ListUsers returns a page of users in insertion order. A negative offset is
// treated as 0 and the limit is clamped to MaxPageSize.
func (s *userService) ListUsers(ctx context.Context, offset, limit int) ([]model.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	users, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListUsersByRole rejects unknown roles; a known role with no users yields an
// empty slice, not an error.
func (s *userService) ListUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q is not one of %v", errors.ErrInvalidRole, role, model.Roles)
	}
	users, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// UpdateUser applies the supplied subset of fields. Email uniqueness is
// re-checked when the email changes, and a supplied password is re-hashed.
func (s *userService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, errors.ErrDuplicateEmail
		} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Password != nil {
		user.PasswordHash = model.HashPassword(*input.Password)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.cache.Delete(ctx, userCacheKey(id))
	return user, nil
}

// DeleteUser removes the row permanently. Deleting an already-deleted id
// reports not-found; the operation is deliberately not idempotent.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.cache.Delete(ctx, userCacheKey(id))
	return nil
}

// UserStats aggregates counts with fresh queries on every call; statistics
// are never cached.
func (s *userService) UserStats(ctx context.Context) (*UserStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	active, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}
	byRole, err := s.repo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	return &UserStats{
		TotalUsers:    total,
		ActiveUsers:   active,
		InactiveUsers: total - active,
		ByRole:        byRole,
	}, nil
}
