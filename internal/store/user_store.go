package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskflow/internal/apperrors"
	"github.com/nhle/taskflow/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty. Email and
// username must be unique; a conflict is reported as a validation failure
// so the caller can reject the registration cleanly.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if strings.TrimSpace(user.Email) == "" {
		return model.User{}, apperrors.Validationf("user email must not be empty")
	}
	if strings.TrimSpace(user.Username) == "" {
		return model.User{}, apperrors.Validationf("user username must not be empty")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var emailCount int
	if err := tx.GetContext(ctx, &emailCount,
		"SELECT COUNT(*) FROM users WHERE email = ?", user.Email); err != nil {
		return model.User{}, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if emailCount > 0 {
		return model.User{}, apperrors.Validationf("email %s already registered", user.Email)
	}

	var usernameCount int
	if err := tx.GetContext(ctx, &usernameCount,
		"SELECT COUNT(*) FROM users WHERE username = ?", user.Username); err != nil {
		return model.User{}, fmt.Errorf("checking username uniqueness: %w", err)
	}
	if usernameCount > 0 {
		return model.User{}, apperrors.Validationf("username %s already taken", user.Username)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("committing user create: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a single user by email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email %s: %w", email, err)
	}
	return &user, nil
}
