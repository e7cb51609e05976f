package user

import "context"

// TokenGenerator abstracts token issuance and parsing (e.g., JWT).
// It allows use cases to stay framework-agnostic. Subject must fail for
// expired, malformed or wrongly signed tokens before any store access
// happens in the login flow.
type TokenGenerator interface {
	Generate(ctx context.Context, subject string) (string, error)
	Subject(token string) (string, error)
}
