package ports

import (
	"context"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// SignUpInput carries the sign-up form fields.
type SignUpInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResult is returned on successful sign-up or sign-in.
type AuthResult struct {
	Token   string
	Account *domain.Account
	Session *domain.Session
}

// AccountService resolves identity: registration, authentication, session
// lifecycle, and legacy-profile migration.
type AccountService interface {
	SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignOut(ctx context.Context, sessionID string) error
	CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error)
	// Accounts migrates any legacy single-user profile into the canonical
	// collection and returns the merged list. Idempotent after the first
	// migration.
	Accounts(ctx context.Context) ([]domain.Account, error)
}

// DirectoryClient is the external user-directory collaborator consulted at
// sign-up. Failures are non-fatal: sign-up degrades to a locally-only account.
type DirectoryClient interface {
	// FindOrCreate resolves the remote record id for the given identity,
	// creating one when absent.
	FindOrCreate(ctx context.Context, email, name string) (string, error)
}
