package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"investorhub/internal/domain/fault"
	"investorhub/internal/domain/user"
	"investorhub/pkg/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Session is what the middleware needs to authorize a request.
type Session struct {
	UserID uint64    `json:"user_id"`
	Role   user.Role `json:"role"`
}

// SessionStore is implemented by the Redis cache.
type SessionStore interface {
	Put(ctx context.Context, tok string, s Session, ttl time.Duration) error
	Get(ctx context.Context, tok string) (*Session, error)
	Delete(ctx context.Context, tok string) error
}

// ErrSessionNotFound is returned by stores for unknown or expired tokens.
var ErrSessionNotFound = errors.New("session not found")

type Usecase struct {
	users user.Repository
	store SessionStore
	ttl   time.Duration
}

func NewUsecase(users user.Repository, store SessionStore, ttl time.Duration) *Usecase {
	return &Usecase{users: users, store: store, ttl: ttl}
}

type LoginResult struct {
	Token string    `json:"token"`
	Name  string    `json:"name"`
	Role  user.Role `json:"role"`
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", fault.ErrValidation)
	}
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a bad password; do not leak which emails exist
			return nil, fmt.Errorf("%w: invalid email or password", fault.ErrUnauthorized)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid email or password", fault.ErrUnauthorized)
	}

	tok := token.New()
	if err := u.store.Put(ctx, tok, Session{UserID: usr.ID, Role: usr.Role}, u.ttl); err != nil {
		return nil, err
	}
	return &LoginResult{Token: tok, Name: usr.Name, Role: usr.Role}, nil
}

func (u *Usecase) Logout(ctx context.Context, tok string) error {
	return u.store.Delete(ctx, tok)
}

// Resolve maps a bearer token back to its session.
func (u *Usecase) Resolve(ctx context.Context, tok string) (*Session, error) {
	s, err := u.store.Get(ctx, tok)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: session expired or unknown", fault.ErrUnauthorized)
		}
		return nil, err
	}
	return s, nil
}

// HashPassword is used by user provisioning.
func HashPassword(plain string) (string, error) {
	if len(plain) < 8 {
		return "", fmt.Errorf("%w: password must be at least 8 characters", fault.ErrValidation)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
