package domain

import "time"

// User represents a persisted user record. PasswordHash is nil for accounts
// created through Google sign-in that never set a local password.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"`
	GoogleID     *string   `json:"-"`
	Bio          *string   `json:"bio,omitempty"`
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasLocalPassword reports whether the account can log in with email+password.
func (u User) HasLocalPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
