package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/user-management/pkg/security/jwt"
)

// --- helpers ---

func newTokens(t *testing.T, ttl time.Duration) *jwt.Generator {
	t.Helper()
	return jwt.NewGenerator("test-secret", "user-management", ttl)
}

type fakeUserRepo struct {
	users map[uuid.UUID]User

	findByEmailCalls int
	findByIDCalls    int
	saves            []User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]User{}}
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	f.findByEmailCalls++
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	f.findByIDCalls++
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, u User) (User, error) {
	f.saves = append(f.saves, u)
	f.users[u.ID] = u
	return u, nil
}

// --- sign-up ---

func TestSignUp_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := newTokens(t, time.Hour)
	svc := NewUserService(repo, tokens)

	in := SignUpInput{
		Name:     "Julio Gonzalez",
		Email:    "julio@testssw.cl",
		Password: "a2asfGfdfdf4",
		Phones: []Phone{
			{Number: 87650009, CityCode: 7, CountryCode: "25"},
			{Number: 87650010, CityCode: 1, CountryCode: "57"},
		},
	}

	created, err := svc.SignUp(context.Background(), in)
	require.NoError(t, err)

	// Two writes: one for the row, one after the token is issued.
	require.Len(t, repo.saves, 2)
	assert.Empty(t, repo.saves[0].Token)
	assert.Equal(t, created.Token, repo.saves[1].Token)

	assert.True(t, created.IsActive)
	assert.Equal(t, created.Created, created.LastLogin)
	assert.Len(t, created.Phones, 2)

	// The stored credential is a hash of the plaintext, not the plaintext.
	assert.NotEqual(t, in.Password, created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(in.Password)))

	// The issued token encodes the new user's id as subject.
	subject, err := tokens.Subject(created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), subject)
}

func TestSignUp_NoPhones(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewUserService(repo, newTokens(t, time.Hour))

	created, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "nophones@testssw.cl",
		Password: "a2asfGfdfdf4",
	})
	require.NoError(t, err)
	assert.Empty(t, created.Phones)
}

func TestSignUp_InvalidPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewUserService(repo, newTokens(t, time.Hour))

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "julio@testssw.cl",
		Password: "invalidPass",
	})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	// Policy runs before any store access.
	assert.Zero(t, repo.findByEmailCalls)
	assert.Empty(t, repo.saves)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	existing := User{ID: uuid.New(), Email: "julio@testssw.cl"}
	repo.users[existing.ID] = existing

	svc := NewUserService(repo, newTokens(t, time.Hour))

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "julio@testssw.cl",
		Password: "a2asfGfdfdf4",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Contains(t, err.Error(), "julio@testssw.cl")
	assert.Empty(t, repo.saves)
}

// --- login ---

func TestLoginWithToken_RotatesTokenAndReportsOldLastLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := newTokens(t, time.Hour)

	oldLastLogin := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	existing := User{
		ID:        uuid.New(),
		Email:     "julio@testssw.cl",
		Created:   oldLastLogin.Add(-24 * time.Hour),
		LastLogin: oldLastLogin,
		IsActive:  true,
		Phones:    []Phone{{Number: 87650009, CityCode: 7, CountryCode: "25"}},
	}
	repo.users[existing.ID] = existing

	// Issue the presented token with a different ttl so the rotated one
	// cannot collide with it even within the same second.
	presented, err := newTokens(t, 30*time.Minute).Generate(context.Background(), existing.ID.String())
	require.NoError(t, err)

	svc := NewUserService(repo, tokens)

	logged, err := svc.LoginWithToken(context.Background(), presented)
	require.NoError(t, err)

	// The response reports the login before this call.
	assert.Equal(t, oldLastLogin, logged.LastLogin)

	// The store holds the new values.
	stored := repo.users[existing.ID]
	assert.True(t, stored.LastLogin.After(oldLastLogin))
	assert.NotEqual(t, presented, stored.Token)
	assert.Equal(t, stored.Token, logged.Token)

	// Full profile comes back.
	assert.Equal(t, existing.Email, logged.Email)
	assert.Len(t, logged.Phones, 1)
}

func TestLoginWithToken_UnknownSubject(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := newTokens(t, time.Hour)
	svc := NewUserService(repo, tokens)

	missing := uuid.New()
	tok, err := tokens.Generate(context.Background(), missing.String())
	require.NoError(t, err)

	_, err = svc.LoginWithToken(context.Background(), tok)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), missing.String())
}

func TestLoginWithToken_ExpiredTokenSkipsLookup(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewUserService(repo, newTokens(t, time.Hour))

	expired, err := newTokens(t, -time.Minute).Generate(context.Background(), uuid.NewString())
	require.NoError(t, err)

	_, err = svc.LoginWithToken(context.Background(), expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.Zero(t, repo.findByIDCalls)
}

func TestLoginWithToken_MalformedToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewUserService(repo, newTokens(t, time.Hour))

	_, err := svc.LoginWithToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
	assert.Zero(t, repo.findByIDCalls)
}

func TestLoginWithToken_SubjectNotAUserID(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := newTokens(t, time.Hour)
	svc := NewUserService(repo, tokens)

	tok, err := tokens.Generate(context.Background(), "not-a-uuid")
	require.NoError(t, err)

	_, err = svc.LoginWithToken(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenSubjectMissing)
	assert.Zero(t, repo.findByIDCalls)
}

func TestLoginWithToken_EmptySubject(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := newTokens(t, time.Hour)
	svc := NewUserService(repo, tokens)

	tok, err := tokens.Generate(context.Background(), "")
	require.NoError(t, err)

	_, err = svc.LoginWithToken(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenSubjectMissing)
}
