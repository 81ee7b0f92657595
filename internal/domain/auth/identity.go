package auth

import (
	"context"
	"errors"
)

// Identity is an account located by email, regardless of which store it
// lives in. The role tag distinguishes the variant.
type Identity struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	RoleName     Role
	Department   string
}

// ErrNoIdentity is returned when no store holds an account for the email.
var ErrNoIdentity = errors.New("no account for email")

// UserContext is the authenticated caller attached to a request.
type UserContext struct {
	UserID     string
	Email      string
	Name       string
	RoleName   Role
	Department string
}

// Resolver locates accounts across the three account stores. Implementations
// probe hr, then manager, then employee records in that fixed priority
// order, so an email present in more than one store always resolves to the
// higher tier.
type Resolver interface {
	Resolve(ctx context.Context, email string) (Identity, error)
}
