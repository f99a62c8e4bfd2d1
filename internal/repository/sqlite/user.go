package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB is the users table.
type UserDB struct {
	conn *sql.DB
}

// Create inserts a new user. The ID and CreatedAt are generated here and
// written back into user.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, name, photo_url, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.Name,
		user.PhotoURL,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Email, err)
	}

	return nil
}

// GetByEmail retrieves a user by email.
// Returns apperror.ErrNotFound if no user has that email.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := u.conn.QueryRowContext(ctx,
		`SELECT id, email, name, photo_url, role, created_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundBy("user", "email", email)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", email, err)
	}

	return &user, nil
}
