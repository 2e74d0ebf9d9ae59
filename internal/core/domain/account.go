package domain

import (
	"strings"
	"time"
)

// Account is a registered identity. Accounts are created on sign-up or by
// legacy-profile migration and are never deleted by the application.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DirectoryID  string    `json:"directory_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LegacyProfile is the pre-multi-account single-user record. Its password is
// stored in the clear; migration hashes it on the way into the canonical
// accounts collection.
type LegacyProfile struct {
	Name     string
	Email    string
	Password string
}

// Session identifies the currently authenticated account. A session is live
// only while its record exists in the session store; sign-out deletes it.
type Session struct {
	ID        string    `json:"-"`
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// All email comparison goes through this, so "A@B.com" and "a@b.com"
// resolve to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultName returns the local part of the email address, used as the
// display name when none was supplied at sign-up.
func DefaultName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
