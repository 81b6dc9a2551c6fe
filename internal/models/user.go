package models

// User represents a registered account.
type User struct {
	// ID is the database-assigned identifier.
	ID int64

	// Username is the unique login name.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never holds the plaintext password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
