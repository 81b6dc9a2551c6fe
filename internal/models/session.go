package models

// Session is a server-side login session. The token travels in a cookie;
// everything else stays in the database.
type Session struct {
	// Token is the opaque session identifier (UUID format).
	Token string

	// UserID is the authenticated user this session belongs to.
	UserID int64

	// CreatedAt and ExpiresAt are Unix timestamps.
	CreatedAt int64
	ExpiresAt int64
}
