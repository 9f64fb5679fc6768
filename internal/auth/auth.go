// Package auth gates access to the dashboard. The storage format is a
// sqlite table rather than the classic plain json file, but the
// contract is unchanged: username in, verify(password) out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shatwik/finassist/internal/database"
	"github.com/shatwik/finassist/internal/database/repository"
)

var (
	// ErrInvalidCredentials covers unknown usernames and wrong
	// passwords alike; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFieldsRequired     = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists")
)

// Default account provisioned on first run.
const (
	DefaultUsername = "shatwik"
	defaultPassword = "12903478"
)

// Service implements register/verify/reset over the user repository.
type Service struct {
	Users *repository.UserRepo
}

// EnsureDefault provisions the default account when the store is empty.
func (s *Service) EnsureDefault(ctx context.Context) error {
	n, err := s.Users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	hash, err := hashPassword(defaultPassword)
	if err != nil {
		return err
	}
	return s.Users.Insert(ctx, repository.User{
		Username:     DefaultUsername,
		PasswordHash: hash,
		CreatedAt:    database.Now(),
	})
}

// Verify reports whether the username/password pair is valid.
func (s *Service) Verify(ctx context.Context, username, password string) (bool, error) {
	u, err := s.Users.Get(ctx, username)
	if err != nil {
		return false, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
}

// Register creates a new account. Validation failures abort with no
// state change.
func (s *Service) Register(ctx context.Context, username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirm == "" {
		return ErrFieldsRequired
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	existing, err := s.Users.Get(ctx, username)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.Users.Insert(ctx, repository.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    database.Now(),
	})
}

// Reset replaces the password after re-verifying the old one.
func (s *Service) Reset(ctx context.Context, username, oldPassword, newPassword, confirm string) error {
	if username == "" || oldPassword == "" || newPassword == "" || confirm == "" {
		return ErrFieldsRequired
	}
	ok, err := s.Verify(ctx, username, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, username, hash)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
