package domain

import "errors"

// Sentinel errors for the workflow layer. Handlers map each kind to a fixed
// HTTP status; services wrap these with fmt.Errorf("%w: ...") to attach a
// user-facing message.
var (
	// ErrInvalidCredentials login with unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRegistration invalid or duplicate registration input
	ErrRegistration = errors.New("registration failed")

	// ErrExpenseValidation bad expense input (amount, description, status)
	ErrExpenseValidation = errors.New("invalid expense")

	// ErrExpenseNotFound no expense with that id, or an empty listing
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrUnauthorized ownership or status rule violation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken bad signature, wrong issuer, or expired token
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrTokenCreation signing failure while issuing a token
	ErrTokenCreation = errors.New("failed to create token")

	// ErrUserNotFound token subject does not resolve to an account
	ErrUserNotFound = errors.New("user not found")
)
