package models

// Friendship is a directed edge from one user to another.
//
// Adding a friend creates a single one-directional row. Access checks only
// consult the direction matching the check, so granting access is
// asymmetric even though the UI reads as mutual.
type Friendship struct {
	ID       int64
	UserID   int64
	FriendID int64
}
