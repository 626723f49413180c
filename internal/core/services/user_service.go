package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles user lookups for profiles and administration
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the caller's own user record
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user.ToResponse(), nil
}

// ListUsers lists users with pagination, optionally filtered by role
func (s *UserService) ListUsers(ctx context.Context, role string, offset, limit int) ([]*models.UserResponse, int64, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != "" && !domain.Role(role).IsValid() {
		return nil, 0, domain.ErrInvalidRole
	}

	users, total, err := s.userRepo.List(ctx, role, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, total, nil
}
