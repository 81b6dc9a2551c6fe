package models

// Portfolio is a named grouping of investments owned by exactly one user.
type Portfolio struct {
	ID     int64
	Name   string
	UserID int64
}

// Investment is a holding of a given quantity of a ticker symbol.
//
// UserID duplicates the owning portfolio's user and is written at insert
// time from the session user. Nothing cross-checks it against the
// portfolio's owner.
type Investment struct {
	ID          int64
	Symbol      string
	Quantity    int64
	PortfolioID int64
	UserID      int64
}
