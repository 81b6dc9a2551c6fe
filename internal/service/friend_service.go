package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finnet/internal/models"
	"finnet/internal/storage"
)

// FriendService implements friendship edges and friend portfolio browsing.
type FriendService struct {
	store      storage.Store
	portfolios *PortfolioService
	logger     *slog.Logger
}

// NewFriendService creates a new friend service.
func NewFriendService(store storage.Store, portfolios *PortfolioService, logger *slog.Logger) *FriendService {
	return &FriendService{
		store:      store,
		portfolios: portfolios,
		logger:     logger,
	}
}

// AddFriend inserts the directed edge userID -> friendUsername's user.
// One call, one direction: the named user gains nothing until they add
// the caller back.
func (s *FriendService) AddFriend(ctx context.Context, userID int64, friendUsername string) (*models.User, error) {
	friend, err := s.store.GetUserByUsername(ctx, friendUsername)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	exists, err := s.store.FriendshipExists(ctx, userID, friend.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if exists {
		return nil, ErrFriendshipExists
	}

	f := &models.Friendship{UserID: userID, FriendID: friend.ID}
	if err := s.store.CreateFriendship(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}

	s.logger.Info("Friendship created", "user_id", userID, "friend_id", friend.ID)
	return friend, nil
}

// Friends returns the users connected to userID by an edge in either
// direction. The listing reads as mutual; portfolio access does not.
func (s *FriendService) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// FriendPortfolios returns the named friend and their portfolios with
// aggregate values. The requester needs the same ownership-or-friend grant
// as any other portfolio read.
func (s *FriendService) FriendPortfolios(ctx context.Context, requesterID, friendID int64) (*models.User, []PortfolioSummary, error) {
	friend, err := s.store.GetUserByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to look up friend: %w", err)
	}

	if err := s.authorizeUser(ctx, requesterID, friendID); err != nil {
		return nil, nil, err
	}

	summaries, err := s.portfolios.Summaries(ctx, friendID)
	if err != nil {
		return nil, nil, err
	}
	return friend, summaries, nil
}

// FriendPortfolio returns one of the friend's portfolios with annotated
// investments. A portfolio that exists but is not owned by friendID is
// reported as not found.
func (s *FriendService) FriendPortfolio(ctx context.Context, requesterID, friendID, portfolioID int64) (*models.User, *PortfolioView, error) {
	friend, err := s.store.GetUserByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to look up friend: %w", err)
	}

	portfolio, err := s.store.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, nil, err
	}
	if portfolio.UserID != friendID {
		return nil, nil, fmt.Errorf("portfolio %d: %w", portfolioID, storage.ErrNotFound)
	}

	view, err := s.portfolios.View(ctx, requesterID, portfolioID)
	if err != nil {
		return nil, nil, err
	}
	return friend, view, nil
}

// authorizeUser applies the directional access rule against a user rather
// than a portfolio: requester is the user themselves, or holds an edge
// requester -> user.
func (s *FriendService) authorizeUser(ctx context.Context, requesterID, ownerID int64) error {
	if requesterID == ownerID {
		return nil
	}
	isFriend, err := s.store.FriendshipExists(ctx, requesterID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to check friendship: %w", err)
	}
	if !isFriend {
		return ErrForbidden
	}
	return nil
}
