package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndSubject_Success(t *testing.T) {
	t.Parallel()

	g := NewGenerator("super-secret", "user-management", time.Hour)

	tok, err := g.Generate(context.Background(), "user-123")
	require.NoError(t, err)

	subject, err := g.Subject(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
	assert.False(t, g.IsExpired(tok))
}

func TestSubject_Expired(t *testing.T) {
	t.Parallel()

	g := NewGenerator("secret", "user-management", -1*time.Second)

	tok, err := g.Generate(context.Background(), "u1")
	require.NoError(t, err)

	_, err = g.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.True(t, g.IsExpired(tok))
}

func TestSubject_WrongSecret(t *testing.T) {
	t.Parallel()

	issuing := NewGenerator("right-secret", "user-management", time.Hour)
	verifying := NewGenerator("wrong-secret", "user-management", time.Hour)

	tok, err := issuing.Generate(context.Background(), "u2")
	require.NoError(t, err)

	_, err = verifying.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSubject_WrongIssuer(t *testing.T) {
	t.Parallel()

	issuing := NewGenerator("secret", "someone-else", time.Hour)
	verifying := NewGenerator("secret", "user-management", time.Hour)

	tok, err := issuing.Generate(context.Background(), "u3")
	require.NoError(t, err)

	_, err = verifying.Subject(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSubject_Malformed(t *testing.T) {
	t.Parallel()

	g := NewGenerator("k", "user-management", time.Hour)

	_, err := g.Subject("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.True(t, g.IsExpired("not.a.jwt"))
}

func TestValid(t *testing.T) {
	t.Parallel()

	g := NewGenerator("k", "user-management", time.Hour)

	tok, err := g.Generate(context.Background(), "subject-a")
	require.NoError(t, err)

	assert.True(t, g.Valid(tok, "subject-a"))
	assert.False(t, g.Valid(tok, "subject-b"))
	assert.False(t, g.Valid("garbage", "subject-a"))

	expired := NewGenerator("k", "user-management", -time.Minute)
	tok, err = expired.Generate(context.Background(), "subject-a")
	require.NoError(t, err)
	assert.False(t, g.Valid(tok, "subject-a"))
}
