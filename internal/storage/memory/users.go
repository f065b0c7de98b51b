package memory

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := s.write(ctx, func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return domain.ErrUsernameTaken
			}
		}
		st.nextUserID++
		u.ID = st.nextUserID
		st.users[u.ID] = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var out domain.User
	err := s.read(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				out = u
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	return out, err
}

func (s *Store) GetUserByToken(ctx context.Context, key string) (domain.User, error) {
	var out domain.User
	err := s.read(ctx, func(st *state) error {
		tok, ok := st.tokens[key]
		if !ok {
			return domain.ErrUserNotFound
		}
		u, ok := st.users[tok.UserID]
		if !ok {
			return domain.ErrUserNotFound
		}
		out = u
		return nil
	})
	return out, err
}

func (s *Store) GetOrCreateToken(ctx context.Context, token domain.AuthToken) (domain.AuthToken, error) {
	var out domain.AuthToken
	err := s.write(ctx, func(st *state) error {
		if _, ok := st.users[token.UserID]; !ok {
			return domain.ErrUserNotFound
		}
		for _, existing := range st.tokens {
			if existing.UserID == token.UserID {
				out = existing
				return nil
			}
		}
		st.tokens[token.Key] = token
		out = token
		return nil
	})
	return out, err
}
