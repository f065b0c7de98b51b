package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const userColumns = `u.id, u.username, u.password_hash, u.first_name, u.last_name, u.is_active`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsActive)
	return u, err
}

// CreateUser inserts u and returns it with its assigned id.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const stmt = `
INSERT INTO users (username, password_hash, first_name, last_name, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := s.queryRow(ctx, stmt, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.IsActive).Scan(&u.ID)
	if err != nil {
		return domain.User{}, mapWriteError("create user", err)
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(s.queryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByToken(ctx context.Context, key string) (domain.User, error) {
	const query = `SELECT ` + userColumns + `
FROM auth_tokens t
JOIN users u ON u.id = t.user_id
WHERE t.key = $1`
	u, err := scanUser(s.queryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by token: %w", err)
	}
	return u, nil
}

// GetOrCreateToken stores token unless the user already has one. Concurrent
// first logins converge on whichever insert won.
func (s *Store) GetOrCreateToken(ctx context.Context, token domain.AuthToken) (domain.AuthToken, error) {
	const insert = `
INSERT INTO auth_tokens (key, user_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO NOTHING`
	if _, err := s.exec(ctx, insert, token.Key, token.UserID, token.CreatedAt); err != nil {
		return domain.AuthToken{}, mapWriteError("create token", err)
	}

	var out domain.AuthToken
	err := s.queryRow(ctx, `SELECT key, user_id, created_at FROM auth_tokens WHERE user_id = $1`, token.UserID).
		Scan(&out.Key, &out.UserID, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AuthToken{}, domain.ErrUserNotFound
		}
		return domain.AuthToken{}, fmt.Errorf("get token: %w", err)
	}
	return out, nil
}
