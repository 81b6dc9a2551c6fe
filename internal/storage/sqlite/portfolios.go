package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finnet/internal/models"
	"finnet/internal/storage"
)

// CreatePortfolio persists a new portfolio to the database.
func (s *SQLiteStore) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO portfolios (name, user_id) VALUES (?, ?)",
		p.Name, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read portfolio id: %w", err)
	}
	p.ID = id

	return nil
}

// GetPortfolio retrieves a portfolio by ID.
func (s *SQLiteStore) GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, user_id FROM portfolios WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("portfolio %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return p, nil
}

// ListPortfoliosByUser returns all portfolios owned by the given user.
func (s *SQLiteStore) ListPortfoliosByUser(ctx context.Context, userID int64) ([]models.Portfolio, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, user_id FROM portfolios WHERE user_id = ? ORDER BY id", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []models.Portfolio
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate portfolios: %w", err)
	}

	return portfolios, nil
}

// CreateInvestment persists a new investment to the database.
func (s *SQLiteStore) CreateInvestment(ctx context.Context, inv *models.Investment) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO investments (symbol, quantity, portfolio_id, user_id) VALUES (?, ?, ?, ?)",
		inv.Symbol, inv.Quantity, inv.PortfolioID, inv.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read investment id: %w", err)
	}
	inv.ID = id

	return nil
}

// ListInvestmentsByPortfolio returns all investments in a portfolio.
func (s *SQLiteStore) ListInvestmentsByPortfolio(ctx context.Context, portfolioID int64) ([]models.Investment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, symbol, quantity, portfolio_id, user_id FROM investments WHERE portfolio_id = ? ORDER BY id",
		portfolioID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err := rows.Scan(&inv.ID, &inv.Symbol, &inv.Quantity, &inv.PortfolioID, &inv.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}

	return investments, nil
}
