package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"finnet/internal/models"
	"finnet/internal/quotes"
	"finnet/internal/storage"
)

// InvestmentLine is an investment annotated with its current valuation.
// Price and Value are nil when the price lookup failed; nil means
// "valuation unavailable", never zero.
type InvestmentLine struct {
	models.Investment
	Price *decimal.Decimal
	Value *decimal.Decimal
}

// PortfolioView is a portfolio together with its annotated investments.
type PortfolioView struct {
	Portfolio   models.Portfolio
	Investments []InvestmentLine
}

// PortfolioSummary is a portfolio with its aggregate value. Investments
// whose price lookup failed contribute zero to Total.
type PortfolioSummary struct {
	models.Portfolio
	Total decimal.Decimal
}

// PortfolioService implements portfolio creation, investment recording and
// valuation, and the ownership-or-friend access rule.
type PortfolioService struct {
	store  storage.Store
	quotes quotes.Provider
	logger *slog.Logger
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(store storage.Store, provider quotes.Provider, logger *slog.Logger) *PortfolioService {
	return &PortfolioService{
		store:  store,
		quotes: provider,
		logger: logger,
	}
}

// Create inserts a new portfolio owned by userID.
func (s *PortfolioService) Create(ctx context.Context, userID int64, name string) (*models.Portfolio, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrPortfolioNameRequired
	}

	p := &models.Portfolio{Name: name, UserID: userID}
	if err := s.store.CreatePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	s.logger.Info("Portfolio created", "portfolio_id", p.ID, "user_id", userID)
	return p, nil
}

// AddInvestment validates and records a holding in the given portfolio.
// The symbol must resolve to a live price before anything is inserted.
// Submitting the same investment twice inserts two rows.
func (s *PortfolioService) AddInvestment(ctx context.Context, userID, portfolioID int64, symbol string, quantity int64) (*models.Investment, error) {
	symbol = quotes.Normalize(symbol)
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// Verify the symbol resolves to a live price.
	if _, err := s.quotes.Price(ctx, symbol); err != nil {
		s.logger.Warn("Symbol verification failed", "symbol", symbol, "error", err)
		return nil, ErrUnknownSymbol
	}

	inv := &models.Investment{
		Symbol:      symbol,
		Quantity:    quantity,
		PortfolioID: portfolioID,
		UserID:      userID,
	}
	if err := s.store.CreateInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to add investment: %w", err)
	}

	s.logger.Info("Investment added",
		"investment_id", inv.ID,
		"portfolio_id", portfolioID,
		"symbol", symbol,
		"quantity", quantity,
	)
	return inv, nil
}

// View returns the portfolio with each investment annotated with its
// current price and price×quantity. A failed lookup yields a nil price and
// value for that line only; the rest of the view still renders.
// The requester must be the owner or hold a friendship edge to the owner.
func (s *PortfolioService) View(ctx context.Context, requesterID, portfolioID int64) (*PortfolioView, error) {
	portfolio, err := s.authorize(ctx, requesterID, portfolioID)
	if err != nil {
		return nil, err
	}

	investments, err := s.store.ListInvestmentsByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	view := &PortfolioView{Portfolio: *portfolio}
	for _, inv := range investments {
		line := InvestmentLine{Investment: inv}
		if price, err := s.quotes.Price(ctx, inv.Symbol); err == nil {
			value := price.Mul(decimal.NewFromInt(inv.Quantity))
			line.Price = &price
			line.Value = &value
		}
		view.Investments = append(view.Investments, line)
	}

	return view, nil
}

// TotalValue returns the sum of quantity×price over all investments whose
// price lookup succeeded. Failed lookups are excluded from the aggregate,
// unlike the per-line annotations which show them as unavailable.
// Same access rule as View.
func (s *PortfolioService) TotalValue(ctx context.Context, requesterID, portfolioID int64) (decimal.Decimal, error) {
	if _, err := s.authorize(ctx, requesterID, portfolioID); err != nil {
		return decimal.Zero, err
	}
	return s.sumPortfolio(ctx, portfolioID)
}

// Summaries returns ownerID's portfolios, each with its aggregate value.
func (s *PortfolioService) Summaries(ctx context.Context, ownerID int64) ([]PortfolioSummary, error) {
	portfolios, err := s.store.ListPortfoliosByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	var summaries []PortfolioSummary
	for _, p := range portfolios {
		total, err := s.sumPortfolio(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, PortfolioSummary{Portfolio: p, Total: total})
	}
	return summaries, nil
}

// Price exposes the quote provider for the JSON price endpoint.
func (s *PortfolioService) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return s.quotes.Price(ctx, symbol)
}

func (s *PortfolioService) sumPortfolio(ctx context.Context, portfolioID int64) (decimal.Decimal, error) {
	investments, err := s.store.ListInvestmentsByPortfolio(ctx, portfolioID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load investments: %w", err)
	}

	total := decimal.Zero
	for _, inv := range investments {
		price, err := s.quotes.Price(ctx, inv.Symbol)
		if err != nil {
			// Unavailable prices are left out of the aggregate.
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(inv.Quantity)))
	}
	return total, nil
}

// authorize loads the portfolio and applies the access rule: requester is
// the owner, or a friendship edge requester -> owner exists. The edge is
// directional; the reverse edge grants nothing here.
func (s *PortfolioService) authorize(ctx context.Context, requesterID, portfolioID int64) (*models.Portfolio, error) {
	portfolio, err := s.store.GetPortfolio(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	if portfolio.UserID == requesterID {
		return portfolio, nil
	}

	isFriend, err := s.store.FriendshipExists(ctx, requesterID, portfolio.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !isFriend {
		return nil, ErrForbidden
	}

	return portfolio, nil
}
