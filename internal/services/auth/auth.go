package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inmobiliaria/internal/lib/jwt"
	"inmobiliaria/internal/lib/logger/sl"
)

const AdminSubject = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin password is not configured")
)

// Auth guards the admin API with one bcrypt-hashed password and short-lived
// HS256 tokens.
type Auth struct {
	log          *slog.Logger
	passwordHash []byte
	secret       string
	tokenTTL     time.Duration
}

func New(log *slog.Logger, passwordHash, secret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		log:          log,
		passwordHash: []byte(passwordHash),
		secret:       secret,
		tokenTTL:     tokenTTL,
	}
}

func (a *Auth) Login(ctx context.Context, password string) (string, error) {
	const op = "auth.Login"
	log := a.log.With(slog.String("op", op))

	if len(a.passwordHash) == 0 {
		log.Warn("login attempted without a configured password")
		return "", fmt.Errorf("%s: %w", op, ErrLoginDisabled)
	}

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := a.IssueToken()
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in")
	return token, nil
}

// IssueToken signs a token without a password check; the CLI uses it.
func (a *Auth) IssueToken() (string, error) {
	return jwt.NewToken(AdminSubject, a.secret, a.tokenTTL)
}

func (a *Auth) ValidateToken(token string) error {
	const op = "auth.ValidateToken"

	sub, err := jwt.ParseToken(token, a.secret)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if sub != AdminSubject {
		return fmt.Errorf("%s: %w", op, jwt.ErrInvalidTokenClaims)
	}

	return nil
}

// HashPassword produces the value expected in the admin password_hash setting.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
