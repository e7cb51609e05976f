package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase describes registration and token-based login behavior.
type UserUseCase interface {
	SignUp(ctx context.Context, in SignUpInput) (User, error)
	LoginWithToken(ctx context.Context, token string) (User, error)
	Profile(ctx context.Context, id uuid.UUID) (User, error)
}

// SignUpInput carries the validated sign-up payload into the domain layer.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phones   []Phone
}

type userService struct {
	repo   UserRepository
	tokens TokenGenerator
}

// NewUserService returns default implementation of UserUseCase.
func NewUserService(repo UserRepository, tokens TokenGenerator) UserUseCase {
	return &userService{repo: repo, tokens: tokens}
}

// SignUp registers a new user. The password policy runs before any store
// access, so a rejected password has no side effects. The user is persisted
// twice: the token subject is the user id, which only exists after the
// first save.
func (s *userService) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	if !IsAcceptablePassword(in.Password) {
		return User{}, ErrInvalidPassword
	}

	// Best-effort duplicate check; the unique index on email is the real guard.
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return User{}, AlreadyExistsError(in.Email)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	u := User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		Created:      now,
		LastLogin:    now,
		IsActive:     true,
		Phones:       in.Phones,
	}

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		return User{}, err
	}

	token, err := s.tokens.Generate(ctx, saved.ID.String())
	if err != nil {
		return User{}, err
	}
	saved.Token = token

	return s.repo.Save(ctx, saved)
}

// LoginWithToken is a token-based session refresh: it resolves the token
// subject, rotates the token and advances LastLogin. The returned User
// deliberately carries the *previous* LastLogin; the store holds the new one.
func (s *userService) LoginWithToken(ctx context.Context, token string) (User, error) {
	subject, err := s.tokens.Subject(token)
	if err != nil {
		return User{}, err
	}
	if subject == "" {
		return User{}, ErrTokenSubjectMissing
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return User{}, ErrTokenSubjectMissing
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, NotFoundError(subject)
		}
		return User{}, err
	}

	oldLastLogin := u.LastLogin

	u.LastLogin = time.Now().UTC()
	newToken, err := s.tokens.Generate(ctx, subject)
	if err != nil {
		return User{}, err
	}
	u.Token = newToken

	updated, err := s.repo.Save(ctx, u)
	if err != nil {
		return User{}, err
	}

	updated.LastLogin = oldLastLogin
	return updated, nil
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, NotFoundError(id.String())
		}
		return User{}, err
	}
	return u, nil
}
