package domain

import "time"

// User is a registered account. Emails are unique under case-insensitive
// comparison; the store normalizes lookups to lowercase.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password.
	// Never serialized and never logged.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
