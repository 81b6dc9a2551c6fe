// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"finnet/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for finnet storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user.ID field is populated by
	// the store. Fails if the username is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// CreatePortfolio persists a new portfolio and populates its ID.
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error

	// GetPortfolio retrieves a portfolio by ID.
	GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, error)

	// ListPortfoliosByUser returns all portfolios owned by the given user.
	ListPortfoliosByUser(ctx context.Context, userID int64) ([]models.Portfolio, error)

	// CreateInvestment persists a new investment and populates its ID.
	// Repeated calls insert repeated rows; nothing deduplicates.
	CreateInvestment(ctx context.Context, inv *models.Investment) error

	// ListInvestmentsByPortfolio returns all investments in a portfolio.
	ListInvestmentsByPortfolio(ctx context.Context, portfolioID int64) ([]models.Investment, error)

	// CreateFriendship inserts the directed edge userID -> friendID.
	// Fails if that exact edge already exists; the reverse edge is a
	// different row.
	CreateFriendship(ctx context.Context, f *models.Friendship) error

	// FriendshipExists reports whether the directed edge
	// userID -> friendID exists. Direction matters.
	FriendshipExists(ctx context.Context, userID, friendID int64) (bool, error)

	// ListFriends returns the users connected to userID by an edge in
	// either direction. Display is symmetric even though access is not.
	ListFriends(ctx context.Context, userID int64) ([]models.User, error)

	// CreateSession persists a login session.
	CreateSession(ctx context.Context, s *models.Session) error

	// GetSession retrieves a session by token. Expired sessions are
	// treated as not found.
	GetSession(ctx context.Context, token string) (*models.Session, error)

	// DeleteSession removes a session. Deleting an unknown token is not
	// an error.
	DeleteSession(ctx context.Context, token string) error

	// Close releases any resources held by the store.
	Close() error
}
