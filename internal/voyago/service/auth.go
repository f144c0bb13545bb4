package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/voyago-labs/voyago/internal/voyago/domain"
	"github.com/voyago-labs/voyago/internal/voyago/store"
	"github.com/voyago-labs/voyago/pkg/cryptox"
	"github.com/voyago-labs/voyago/pkg/idx"
	"github.com/voyago-labs/voyago/pkg/jwtx"
)

// minPasswordLength is the password policy: at least 8 characters. Length is
// the only property enforced; composition rules push users toward worse
// passwords, not better ones.
const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// AuthService registers users, authenticates logins and verifies session
// tokens.
type AuthService struct {
	Store      store.Store
	Tokens     *jwtx.HS256
	SessionTTL time.Duration
	Issuer     string
}

// Register validates the input, hashes the password and persists a new user,
// returning a session token bound to the fresh user id.
//
// The pre-insert existence check only exists for the common-case friendly
// error; the race between two concurrent registrations is decided by the
// schema's unique index, which surfaces here as ErrDuplicateEmail too.
func (s *AuthService) Register(ctx context.Context, userName, email, password string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return "", ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("check existing user: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.signSessionToken(user.ID)
}

// Login authenticates by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials so a caller can't probe which
// half was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	return s.signSessionToken(user.ID)
}

// VerifyToken checks a presented session token and returns the embedded user
// id. The token is stateless; validity is signature plus expiry, nothing
// else.
func (s *AuthService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func (s *AuthService) signSessionToken(userID string) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(userID, s.Issuer, ttl, time.Now().UTC())
	token, err := s.Tokens.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}
