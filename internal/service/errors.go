package service

import "errors"

var (
	// ErrPortfolioNameRequired rejects portfolio creation with no name.
	ErrPortfolioNameRequired = errors.New("portfolio name required")

	// ErrSymbolRequired rejects an investment with no symbol.
	ErrSymbolRequired = errors.New("symbol required")

	// ErrInvalidQuantity rejects a non-positive or non-numeric quantity
	// before any row is inserted.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")

	// ErrUnknownSymbol rejects an investment whose symbol cannot be
	// resolved to a live price.
	ErrUnknownSymbol = errors.New("unable to verify stock symbol")

	// ErrForbidden denies access to a portfolio the requester neither
	// owns nor was granted through a friendship edge.
	ErrForbidden = errors.New("you don't have access to this portfolio")

	// ErrUserNotFound rejects a friend request naming an unknown user.
	ErrUserNotFound = errors.New("user not found")

	// ErrFriendshipExists rejects a duplicate directed friendship edge.
	ErrFriendshipExists = errors.New("friendship already exists")
)
