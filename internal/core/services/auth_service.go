package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/core/domain"
	"vetcare-api/internal/pkg/metrics"
	"vetcare-api/internal/pkg/password"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		log:      log,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput represents login input
type LoginInput struct {
	Email    string
	Password string
}

// ResetPasswordInput identifies the account by email or name
type ResetPasswordInput struct {
	Email       string
	Name        string
	NewPassword string
}

// AuthResult is returned by register and login
type AuthResult struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	role := domain.Role(strings.TrimSpace(input.Role))

	if name == "" || email == "" || input.Password == "" || role == "" {
		s.countAuth("register", "invalid")
		return nil, domain.NewValidationError("name, email, password and role are required")
	}
	if !role.IsValid() {
		s.countAuth("register", "invalid")
		return nil, domain.ErrInvalidRole
	}

	// 1. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		s.countAuth("register", "conflict")
		return nil, domain.ErrEmailTaken
	}

	// 2. Hash password
	hash, err := s.hashPassword(input.Password)
	if err != nil {
		s.countAuth("register", "invalid")
		return nil, err
	}

	// 3. Create user; the unique index settles concurrent registrations
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role.String(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.countAuth("register", "conflict")
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 4. Issue token
	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.countAuth("register", "success")
	s.log.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return result, nil
}

// Login authenticates a user. Unknown email and wrong password produce the
// same error after the same amount of hashing work.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		s.countAuth("login", "invalid")
		return nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.BurnCompare(input.Password)
			s.countAuth("login", "bad_credentials")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.Password) {
		s.countAuth("login", "bad_credentials")
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.countAuth("login", "success")
	s.log.Info().Uint("user_id", user.ID).Msg("user logged in")

	return result, nil
}

// ResetPassword replaces the password of the first user matching the
// email or name. It does not ask for the current password.
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	if input.NewPassword == "" {
		s.countAuth("reset_password", "invalid")
		return domain.NewValidationError("newPassword is required")
	}
	if email == "" && name == "" {
		s.countAuth("reset_password", "invalid")
		return domain.NewValidationError("email or name is required")
	}

	user, err := s.userRepo.FindByEmailOrName(ctx, email, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.countAuth("reset_password", "not_found")
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hashPassword(input.NewPassword)
	if err != nil {
		s.countAuth("reset_password", "invalid")
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	s.countAuth("reset_password", "success")
	s.log.Warn().Uint("user_id", user.ID).Msg("password reset without current password")

	return nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, _, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user.ToResponse(), Token: token}, nil
}

// hashPassword turns bcrypt's input limits into client errors
func (s *AuthService) hashPassword(plaintext string) (string, error) {
	hash, err := s.hasher.Hash(plaintext)
	switch {
	case errors.Is(err, password.ErrPasswordTooLong):
		return "", domain.NewValidationError("password is too long")
	case errors.Is(err, password.ErrEmptyPassword):
		return "", domain.NewValidationError("password is required")
	case err != nil:
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (s *AuthService) countAuth(event, result string) {
	metrics.AuthEventsTotal.WithLabelValues(event, result).Inc()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
