package service

import (
	"context"
	"errors"
	"testing"

	"finnet/internal/models"
	"finnet/internal/storage"
)

func TestAddFriend(t *testing.T) {
	store := newTestStore(t)
	portfolios := NewPortfolioService(store, fakePrices{}, testLogger())
	svc := NewFriendService(store, portfolios, testLogger())
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	t.Run("unknown username is not found", func(t *testing.T) {
		if _, err := svc.AddFriend(ctx, alice.ID, "nobody"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("creates a single directed edge", func(t *testing.T) {
		friend, err := svc.AddFriend(ctx, alice.ID, "bob")
		if err != nil {
			t.Fatalf("AddFriend failed: %v", err)
		}
		if friend.ID != bob.ID {
			t.Errorf("Friend mismatch: got %d, want %d", friend.ID, bob.ID)
		}

		reverse, err := store.FriendshipExists(ctx, bob.ID, alice.ID)
		if err != nil {
			t.Fatalf("FriendshipExists failed: %v", err)
		}
		if reverse {
			t.Error("AddFriend must not create the reverse edge")
		}
	})

	t.Run("duplicate edge is rejected", func(t *testing.T) {
		if _, err := svc.AddFriend(ctx, alice.ID, "bob"); !errors.Is(err, ErrFriendshipExists) {
			t.Errorf("Expected ErrFriendshipExists, got %v", err)
		}
	})

	t.Run("reverse direction can still be added", func(t *testing.T) {
		if _, err := svc.AddFriend(ctx, bob.ID, "alice"); err != nil {
			t.Errorf("Reverse AddFriend failed: %v", err)
		}
	})
}

func TestFriendPortfolios(t *testing.T) {
	store := newTestStore(t)
	prices := fakePrices{"AAPL": 10.0}
	portfolios := NewPortfolioService(store, prices, testLogger())
	svc := NewFriendService(store, portfolios, testLogger())
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")

	bobsPortfolio, err := portfolios.Create(ctx, bob.ID, "Bob's")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.CreateInvestment(ctx, &models.Investment{
		Symbol: "AAPL", Quantity: 3, PortfolioID: bobsPortfolio.ID, UserID: bob.ID,
	}); err != nil {
		t.Fatalf("CreateInvestment failed: %v", err)
	}

	// alice -> bob only.
	if _, err := svc.AddFriend(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}

	t.Run("edge holder sees the friend's totals", func(t *testing.T) {
		friend, summaries, err := svc.FriendPortfolios(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("FriendPortfolios failed: %v", err)
		}
		if friend.Username != "bob" {
			t.Errorf("Friend mismatch: %s", friend.Username)
		}
		if len(summaries) != 1 || summaries[0].Total.IntPart() != 30 {
			t.Errorf("Unexpected summaries: %+v", summaries)
		}
	})

	t.Run("non-friend is denied", func(t *testing.T) {
		if _, _, err := svc.FriendPortfolios(ctx, carol.ID, bob.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})

	t.Run("edge target is denied back", func(t *testing.T) {
		alicesPortfolio, err := portfolios.Create(ctx, alice.ID, "Alice's")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, _, err := svc.FriendPortfolio(ctx, bob.ID, alice.ID, alicesPortfolio.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden for reverse access, got %v", err)
		}
	})

	t.Run("portfolio not owned by the friend is not found", func(t *testing.T) {
		carolsPortfolio, err := portfolios.Create(ctx, carol.ID, "Carol's")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		_, _, err = svc.FriendPortfolio(ctx, alice.ID, bob.ID, carolsPortfolio.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown friend is not found", func(t *testing.T) {
		if _, _, err := svc.FriendPortfolios(ctx, alice.ID, 9999); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
