package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finnet/internal/models"
	"finnet/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "hash-" + username}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and timestamp", func(t *testing.T) {
		user := mustCreateUser(t, store, "alice")
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetUserByUsername round-trips", func(t *testing.T) {
		created := mustCreateUser(t, store, "bob")

		got, err := store.GetUserByUsername(ctx, "bob")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got.ID != created.ID {
			t.Errorf("ID mismatch: got %d, want %d", got.ID, created.ID)
		}
		if got.PasswordHash != created.PasswordHash {
			t.Errorf("PasswordHash mismatch: got %s, want %s", got.PasswordHash, created.PasswordHash)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		mustCreateUser(t, store, "carol")
		err := store.CreateUser(ctx, &models.User{Username: "carol", PasswordHash: "other"})
		if err == nil {
			t.Error("Expected error for duplicate username, got nil")
		}
	})

	t.Run("unknown user reports not found", func(t *testing.T) {
		_, err := store.GetUserByUsername(ctx, "nobody")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestPortfoliosAndInvestments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := mustCreateUser(t, store, "owner")

	t.Run("CreatePortfolio assigns ID", func(t *testing.T) {
		p := &models.Portfolio{Name: "Tech", UserID: owner.ID}
		if err := store.CreatePortfolio(ctx, p); err != nil {
			t.Fatalf("CreatePortfolio failed: %v", err)
		}
		if p.ID == 0 {
			t.Error("Expected portfolio ID to be assigned")
		}
	})

	t.Run("GetPortfolio returns not found for unknown ID", func(t *testing.T) {
		_, err := store.GetPortfolio(ctx, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("investments list in insertion order", func(t *testing.T) {
		p := &models.Portfolio{Name: "Income", UserID: owner.ID}
		if err := store.CreatePortfolio(ctx, p); err != nil {
			t.Fatalf("CreatePortfolio failed: %v", err)
		}

		for _, symbol := range []string{"AAPL", "MSFT"} {
			inv := &models.Investment{Symbol: symbol, Quantity: 10, PortfolioID: p.ID, UserID: owner.ID}
			if err := store.CreateInvestment(ctx, inv); err != nil {
				t.Fatalf("CreateInvestment(%s) failed: %v", symbol, err)
			}
		}

		investments, err := store.ListInvestmentsByPortfolio(ctx, p.ID)
		if err != nil {
			t.Fatalf("ListInvestmentsByPortfolio failed: %v", err)
		}
		if len(investments) != 2 {
			t.Fatalf("Expected 2 investments, got %d", len(investments))
		}
		if investments[0].Symbol != "AAPL" || investments[1].Symbol != "MSFT" {
			t.Errorf("Unexpected order: %s, %s", investments[0].Symbol, investments[1].Symbol)
		}
	})

	t.Run("resubmitting an investment inserts a second row", func(t *testing.T) {
		p := &models.Portfolio{Name: "Dups", UserID: owner.ID}
		if err := store.CreatePortfolio(ctx, p); err != nil {
			t.Fatalf("CreatePortfolio failed: %v", err)
		}

		for i := 0; i < 2; i++ {
			inv := &models.Investment{Symbol: "VOO", Quantity: 5, PortfolioID: p.ID, UserID: owner.ID}
			if err := store.CreateInvestment(ctx, inv); err != nil {
				t.Fatalf("CreateInvestment failed: %v", err)
			}
		}

		investments, err := store.ListInvestmentsByPortfolio(ctx, p.ID)
		if err != nil {
			t.Fatalf("ListInvestmentsByPortfolio failed: %v", err)
		}
		if len(investments) != 2 {
			t.Errorf("Expected 2 rows after resubmit, got %d", len(investments))
		}
	})

	t.Run("ListPortfoliosByUser only returns the owner's", func(t *testing.T) {
		other := mustCreateUser(t, store, "other")
		p := &models.Portfolio{Name: "Other's", UserID: other.ID}
		if err := store.CreatePortfolio(ctx, p); err != nil {
			t.Fatalf("CreatePortfolio failed: %v", err)
		}

		portfolios, err := store.ListPortfoliosByUser(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListPortfoliosByUser failed: %v", err)
		}
		if len(portfolios) != 1 || portfolios[0].Name != "Other's" {
			t.Errorf("Unexpected portfolios: %+v", portfolios)
		}
	})
}

func TestFriendships(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	t.Run("edge is directional", func(t *testing.T) {
		f := &models.Friendship{UserID: alice.ID, FriendID: bob.ID}
		if err := store.CreateFriendship(ctx, f); err != nil {
			t.Fatalf("CreateFriendship failed: %v", err)
		}

		forward, err := store.FriendshipExists(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("FriendshipExists failed: %v", err)
		}
		if !forward {
			t.Error("Expected forward edge to exist")
		}

		reverse, err := store.FriendshipExists(ctx, bob.ID, alice.ID)
		if err != nil {
			t.Fatalf("FriendshipExists failed: %v", err)
		}
		if reverse {
			t.Error("Reverse edge must not exist from a single add")
		}
	})

	t.Run("duplicate edge is rejected", func(t *testing.T) {
		err := store.CreateFriendship(ctx, &models.Friendship{UserID: alice.ID, FriendID: bob.ID})
		if err == nil {
			t.Error("Expected error for duplicate edge, got nil")
		}
	})

	t.Run("ListFriends unions both directions", func(t *testing.T) {
		// alice -> bob exists; bob's listing must still show alice.
		bobFriends, err := store.ListFriends(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}
		if len(bobFriends) != 1 || bobFriends[0].ID != alice.ID {
			t.Errorf("Expected bob's friends to be [alice], got %+v", bobFriends)
		}

		aliceFriends, err := store.ListFriends(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}
		if len(aliceFriends) != 1 || aliceFriends[0].ID != bob.ID {
			t.Errorf("Expected alice's friends to be [bob], got %+v", aliceFriends)
		}
	})
}

func TestSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := mustCreateUser(t, store, "sessioned")

	t.Run("create and fetch", func(t *testing.T) {
		sess := &models.Session{UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour).Unix()}
		if err := store.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if sess.Token == "" {
			t.Fatal("Expected token to be generated")
		}

		got, err := store.GetSession(ctx, sess.Token)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.UserID != user.ID {
			t.Errorf("UserID mismatch: got %d, want %d", got.UserID, user.ID)
		}
	})

	t.Run("expired session reads as not found", func(t *testing.T) {
		sess := &models.Session{UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute).Unix()}
		if err := store.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		_, err := store.GetSession(ctx, sess.Token)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for expired session, got %v", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		sess := &models.Session{UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour).Unix()}
		if err := store.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if err := store.DeleteSession(ctx, sess.Token); err != nil {
			t.Fatalf("DeleteSession failed: %v", err)
		}
		if err := store.DeleteSession(ctx, sess.Token); err != nil {
			t.Errorf("Second DeleteSession failed: %v", err)
		}
		if _, err := store.GetSession(ctx, sess.Token); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
	})
}
