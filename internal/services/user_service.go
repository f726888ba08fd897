package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/alexmail/alexmail-backend/internal/errors"
	"github.com/alexmail/alexmail-backend/internal/logger"
	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// UserService handles account registration and login. Session management is
// left to the caller.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
	secLog   *logger.SecurityLogger
}

// NewUserService creates a new UserService instance
func NewUserService(userRepo repository.UserRepository, secLog *logger.SecurityLogger) UserService {
	return &userService{
		userRepo: userRepo,
		secLog:   secLog,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("email '%s': %w", email, apperrors.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, apperrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Folders:      models.FolderList{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, fmt.Errorf("user '%s': %w", email, apperrors.ErrAlreadyExists)
		}
		return nil, err
	}

	s.secLog.Registration("", email)
	return user, nil
}

// Login verifies credentials. Lookup failures and bad passwords both map to
// invalid-credentials so callers cannot probe for accounts.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.secLog.LoginFailure("", email, "unknown account")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.secLog.LoginFailure("", email, "password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	s.secLog.LoginSuccess("", email)
	return user, nil
}
