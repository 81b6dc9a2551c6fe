package sqlite

import (
	"context"
	"fmt"

	"finnet/internal/models"
)

// CreateFriendship inserts the directed edge UserID -> FriendID.
// The UNIQUE constraint rejects a duplicate edge in the same direction;
// the reverse edge is a distinct row and inserts fine.
func (s *SQLiteStore) CreateFriendship(ctx context.Context, f *models.Friendship) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO friendships (user_id, friend_id) VALUES (?, ?)",
		f.UserID, f.FriendID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert friendship: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read friendship id: %w", err)
	}
	f.ID = id

	return nil
}

// FriendshipExists reports whether the directed edge userID -> friendID
// exists. Only this direction is consulted.
func (s *SQLiteStore) FriendshipExists(ctx context.Context, userID, friendID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM friendships WHERE user_id = ? AND friend_id = ?",
		userID, friendID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return count > 0, nil
}

// ListFriends returns the users connected to userID by a friendship edge
// in either direction, for display purposes.
func (s *SQLiteStore) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT u.id, u.username, u.hash, u.created_at
		FROM users u
		JOIN friendships f ON (f.friend_id = u.id AND f.user_id = ?)
		                   OR (f.user_id = u.id AND f.friend_id = ?)
		ORDER BY u.username`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return friends, nil
}
