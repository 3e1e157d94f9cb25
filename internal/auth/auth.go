// Package auth gates the admin surface: bcrypt-checked credentials, signed
// session tokens and a revocation list for sign-out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrAdminExists        = errors.New("admin already exists")
)

const issuer = "storefront"

type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminStore interface {
	ByEmail(ctx context.Context, email string) (Admin, error)
}

// Denylist records revoked token ids; *redisx.Denylist satisfies it.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type Service struct {
	Admins  AdminStore
	Revoked Denylist
	Secret  []byte
	TTL     time.Duration
	Now     func() time.Time
}

func NewService(admins AdminStore, revoked Denylist, secret string, ttl time.Duration) *Service {
	return &Service{Admins: admins, Revoked: revoked, Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

// SignIn checks the credential pair and returns a signed session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	a, err := s.Admins.ByEmail(ctx, email)
	if errors.Is(err, ErrInvalidCredentials) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !VerifyPassword(a.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		Email: a.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   a.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	log.Printf("[auth] admin %s signed in", a.Email)
	return token, nil
}

// Session validates the token and returns its claims. Expired, malformed and
// revoked tokens all yield ErrNoSession.
func (s *Service) Session(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrNoSession
	}
	if s.Revoked != nil {
		revoked, err := s.Revoked.Revoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check session: %w", err)
		}
		if revoked {
			return nil, ErrNoSession
		}
	}
	return claims, nil
}

func (s *Service) HasSession(ctx context.Context, token string) bool {
	_, err := s.Session(ctx, token)
	return err == nil
}

// SignOut revokes the token for the rest of its lifetime. Signing out without
// a valid session is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.Session(ctx, token)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if s.Revoked == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	return s.Revoked.Revoke(ctx, claims.ID, ttl)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
