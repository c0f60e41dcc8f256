// Package auth implements user registration and login. There is no
// session or token model; login resolves to the user record and leaves
// anything further to the caller.
package auth

import (
	"context"
	"errors"

	"github.com/nhle/taskflow/internal/apperrors"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
)

// ErrInvalidCredentials is returned when login fails. Unknown email and
// wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service provides registration and login over a Store.
type Service struct {
	store  store.Store
	hasher *PasswordHasher
}

// NewService creates an auth service backed by s.
func NewService(s store.Store, hasher *PasswordHasher) *Service {
	return &Service{store: s, hasher: hasher}
}

// Register creates a new user with a hashed password. Email and username
// must be present and unused.
func (s *Service) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	if email == "" {
		return nil, apperrors.Validationf("email is required")
	}
	if username == "" {
		return nil, apperrors.Validationf("username is required")
	}
	if password == "" {
		return nil, apperrors.Validationf("password is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the password for the account registered under email and
// returns the user record.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
