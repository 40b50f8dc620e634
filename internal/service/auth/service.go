package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"mybudget/internal/domain"
	"mybudget/internal/model"
	"mybudget/pkg/metrics"
)

// emailPattern is deliberately conservative: local part, alphabetic-led
// domain, and a 2+ letter TLD.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z][a-zA-Z-]*\.[a-zA-Z]{2,}$`)

// UserStore is the slice of the user repository the auth workflows need.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenIssuer signs a bearer token for a user.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

type Service struct {
	users  UserStore
	tokens TokenIssuer
}

func NewService(users UserStore, tokens TokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Register validates the candidate account and persists it with a hashed
// password and the default USER role.
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := validateEmail(email); err != nil {
		metrics.IncrementRegistration("rejected")
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		metrics.IncrementRegistration("rejected")
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		metrics.IncrementRegistration("error")
		return nil, err
	}
	if existing != nil {
		metrics.IncrementRegistration("rejected")
		return nil, fmt.Errorf("%w: the email is already associated with an existing account", domain.ErrRegistration)
	}

	hash, err := HashPassword(password)
	if err != nil {
		metrics.IncrementRegistration("error")
		return nil, err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		// The store reports the lost uniqueness race as a registration error.
		if errors.Is(err, domain.ErrRegistration) {
			metrics.IncrementRegistration("rejected")
		} else {
			metrics.IncrementRegistration("error")
		}
		return nil, err
	}

	metrics.IncrementRegistration("success")
	return u, nil
}

// Login checks credentials and returns a signed token. Unknown email and
// wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.IncrementLogin("rejected")
		return "", domain.ErrInvalidCredentials
	}

	if !CheckPassword(password, u.PasswordHash) {
		metrics.IncrementLogin("rejected")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		metrics.IncrementLogin("error")
		return "", err
	}

	metrics.IncrementLogin("success")
	return token, nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: the email must not be empty", domain.ErrRegistration)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: the email provided is invalid", domain.ErrRegistration)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: the password must not be empty", domain.ErrRegistration)
	}
	if utf8.RuneCountInString(password) <= 5 {
		return fmt.Errorf("%w: the password must be longer than 5 characters", domain.ErrRegistration)
	}
	return nil
}
