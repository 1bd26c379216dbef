package services

import "context"

// Session is what the identity provider yields after a successful
// password check: a stable user identifier and the account email.
type Session struct {
	UserID string
	Email  string
}

// IdentityProvider authenticates admin operators. Two implementations
// exist: Firebase Auth and a local MongoDB credential store. Both report
// bad email and bad password uniformly as
// models.ErrInvalidCredentials so the login flow never leaks which one
// was wrong.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, userID string) error
}
