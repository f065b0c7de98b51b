package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByToken(ctx context.Context, key string) (domain.User, error)
	// GetOrCreateToken stores token unless the user already has one, and
	// returns the token in effect.
	GetOrCreateToken(ctx context.Context, token domain.AuthToken) (domain.AuthToken, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher hashes passwords with bcrypt at Cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type AuthService struct {
	repo   UserRepository
	hasher PasswordHasher
	clock  clock.Clock
	// dummyHash keeps unknown-user logins as slow as wrong-password ones.
	dummyHash string
}

func NewAuthService(repo UserRepository, hasher PasswordHasher, clk clock.Clock) *AuthService {
	svc := &AuthService{
		repo:   repo,
		hasher: hasher,
		clock:  clk,
	}
	if h, err := hasher.Hash("dreams-dummy-password"); err == nil {
		svc.dummyHash = h
	}
	return svc
}

// Login verifies the credentials and returns the user's session token,
// issuing one on first login.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	p := domain.Problems{}
	if username == "" {
		p.Add("username", "this field is required")
	}
	if password == "" {
		p.Add("password", "this field is required")
	}
	if err := p.Err(); err != nil {
		return domain.Session{}, err
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if s.dummyHash != "" {
				_ = s.hasher.Compare(s.dummyHash, password)
			}
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	key, err := newTokenKey()
	if err != nil {
		return domain.Session{}, err
	}
	token, err := s.repo.GetOrCreateToken(ctx, domain.AuthToken{
		Key:       key,
		UserID:    user.ID,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: token.Key, User: user}, nil
}

// Authenticate resolves a session token to its active user.
func (s *AuthService) Authenticate(ctx context.Context, key string) (domain.User, error) {
	if key == "" {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	user, err := s.repo.GetUserByToken(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidToken
		}
		return domain.User{}, err
	}
	if !user.IsActive {
		return domain.User{}, domain.ErrInvalidToken
	}
	return user, nil
}

type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// CreateUser registers an active operator account.
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (domain.User, error) {
	p := domain.Problems{}
	if in.Username == "" {
		p.Add("username", "this field is required")
	} else if len(in.Username) > 150 {
		p.Add("username", "ensure this field has no more than 150 characters")
	}
	if in.Password == "" {
		p.Add("password", "this field is required")
	}
	if err := p.Err(); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
	})
}

// EnsureUser creates the account unless the username already exists.
func (s *AuthService) EnsureUser(ctx context.Context, in CreateUserInput) (domain.User, bool, error) {
	existing, err := s.repo.GetUserByUsername(ctx, in.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, false, err
	}
	user, err := s.CreateUser(ctx, in)
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

func newTokenKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
