package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token failure kinds surfaced to the boundary layer.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")

	ErrAuthHeaderMissing = errors.New("Required request header 'Authorization' is not present.")
)

// Generator issues and parses HS256 bearer tokens. Tokens are stateless:
// validity is purely signature plus expiry, there is no revocation list.
type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Generate signs a token whose subject is the given user id and whose
// expiry is now + ttl.
func (g *Generator) Generate(ctx context.Context, subject string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    g.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Subject verifies the token and returns its subject. Past-expiry tokens
// yield ErrTokenExpired; anything else that fails verification (malformed,
// wrong signature, wrong method, wrong issuer) yields ErrTokenInvalid.
func (g *Generator) Subject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}
	if g.issuer != "" && claims.Issuer != g.issuer {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// IsExpired fails safe: a token that cannot be parsed at all counts as
// expired rather than propagating an error.
func (g *Generator) IsExpired(tokenStr string) bool {
	_, err := g.Subject(tokenStr)
	return err != nil
}

// Valid reports whether the token verifies, is not expired and carries the
// expected subject. It never errors outward.
func (g *Generator) Valid(tokenStr, expectedSubject string) bool {
	subject, err := g.Subject(tokenStr)
	return err == nil && subject == expectedSubject
}
