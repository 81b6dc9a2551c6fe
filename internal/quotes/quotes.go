// Package quotes fetches live market prices from an external provider.
package quotes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnavailable is returned when no price can be obtained for a symbol,
// either because the provider has no data or because the request failed.
// Callers must treat it as "valuation unavailable", never as zero.
var ErrUnavailable = errors.New("price unavailable")

// Provider looks up the current market price for a ticker symbol.
type Provider interface {
	// Price returns the live quote for symbol, falling back to the most
	// recent daily close when no live quote exists. Returns ErrUnavailable
	// when neither is known.
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}
