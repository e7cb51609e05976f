package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound            = errors.New("not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidPassword     = errors.New("Invalid password. It must have: Exactly one uppercase, two numbers, some lowercase letters, max length 12 and min 8.")
	ErrTokenSubjectMissing = errors.New("Token subject (user ID) is missing or invalid.")
)

// AlreadyExistsError attaches the offending email to ErrUserAlreadyExists.
func AlreadyExistsError(email string) error {
	return &kindError{kind: ErrUserAlreadyExists, msg: fmt.Sprintf("User with email '%s' already exists.", email)}
}

// NotFoundError attaches the token subject to ErrNotFound for diagnostics.
func NotFoundError(subject string) error {
	return &kindError{kind: ErrNotFound, msg: "User not found for token subject: " + subject}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// UserRepository abstracts persistence concerns from the domain layer.
// Save is an upsert and returns the persisted representation. The store,
// not the flow, is the authority on email uniqueness: concurrent duplicate
// registrations must come back as ErrUserAlreadyExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	Save(ctx context.Context, u User) (User, error)
}
