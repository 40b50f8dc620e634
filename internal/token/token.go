package token

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mybudget/internal/domain"
	"mybudget/internal/model"
)

const (
	// DefaultIssuer is the issuer claim stamped into every token.
	DefaultIssuer = "API mybudget-api"

	// DefaultTTL is the fixed validity window of an issued token.
	DefaultTTL = 2 * time.Hour
)

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// UserFinder resolves a user id to an account record.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// Service issues and verifies stateless bearer tokens. There is no
// revocation list; expiry is the only invalidation mechanism.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	users  UserFinder
}

func NewService(cfg Config, users UserFinder) *Service {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(cfg.Secret),
		issuer: issuer,
		ttl:    ttl,
		users:  users,
	}
}

// Issue creates a signed token whose subject is the user's id.
func (s *Service) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenCreation, err)
	}
	return signed, nil
}

// Verify validates signature, issuer and expiry, and returns the subject.
func (s *Service) Verify(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

// ResolveUser verifies the token and loads the account it identifies.
func (s *Service) ResolveUser(ctx context.Context, tokenStr string) (*model.User, error) {
	subject, err := s.Verify(tokenStr)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric subject", domain.ErrInvalidToken)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrUserNotFound, userID)
	}
	return user, nil
}

// ExtractToken pulls the bearer token out of the Authorization header.
// Returns "" when the header is absent or not a bearer credential.
func ExtractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
