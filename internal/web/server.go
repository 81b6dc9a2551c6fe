// Package web exposes the finnet HTTP surface: HTML form routes for
// accounts, portfolios and friends, plus JSON endpoints for prices and
// portfolio values.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"finnet/internal/auth"
	"finnet/internal/middleware"
	"finnet/internal/service"
	"finnet/internal/storage"
)

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
	store         storage.Store
	portfolios    *service.PortfolioService
	friends       *service.FriendService
	sessionTTL    time.Duration
	logger        *slog.Logger
}

// New creates the handler set.
func New(
	authenticator auth.Authenticator,
	jwt *auth.JWTManager,
	store storage.Store,
	portfolios *service.PortfolioService,
	friends *service.FriendService,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		authenticator: authenticator,
		jwt:           jwt,
		store:         store,
		portfolios:    portfolios,
		friends:       friends,
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

// Routes registers every route on a new mux. Authenticated HTML routes
// redirect to /login when no session is present; JSON routes answer 401.
func (h *Handlers) Routes() *http.ServeMux {
	guard := middleware.NewSessionAuth(h.store, h.jwt)

	mux := http.NewServeMux()

	// Account routes
	mux.HandleFunc("GET /{$}", guard.RequirePage(h.index))
	mux.HandleFunc("GET /register", h.registerForm)
	mux.HandleFunc("POST /register", h.register)
	mux.HandleFunc("GET /login", h.loginForm)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("POST /api/login", h.apiLogin)
	mux.HandleFunc("GET /logout", h.logout)

	// Portfolio routes
	mux.HandleFunc("GET /create_portfolio", guard.RequirePage(h.createPortfolioForm))
	mux.HandleFunc("POST /create_portfolio", guard.RequirePage(h.createPortfolio))
	mux.HandleFunc("GET /add_investment/{portfolio_id}", guard.RequirePage(h.addInvestmentForm))
	mux.HandleFunc("POST /add_investment/{portfolio_id}", guard.RequirePage(h.addInvestment))
	mux.HandleFunc("GET /view_portfolio/{portfolio_id}", guard.RequirePage(h.viewPortfolio))
	mux.HandleFunc("GET /my_portfolios", guard.RequirePage(h.myPortfolios))
	mux.HandleFunc("GET /post_portfolio/{portfolio_id}", guard.RequirePage(h.postPortfolioForm))
	mux.HandleFunc("POST /post_portfolio/{portfolio_id}", guard.RequirePage(h.postPortfolio))

	// JSON routes
	mux.HandleFunc("GET /get_stock_price/{symbol}", guard.RequireJSON(h.getStockPrice))
	mux.HandleFunc("GET /get_portfolio_value/{portfolio_id}", guard.RequireJSON(h.getPortfolioValue))

	// Friend routes
	mux.HandleFunc("GET /add_friend", guard.RequirePage(h.addFriendForm))
	mux.HandleFunc("POST /add_friend", guard.RequirePage(h.addFriend))
	mux.HandleFunc("GET /view_friends", guard.RequirePage(h.viewFriends))
	mux.HandleFunc("GET /view_friend_portfolios/{friend_id}", guard.RequirePage(h.viewFriendPortfolios))
	mux.HandleFunc("GET /view_friend_portfolio/{friend_id}/{portfolio_id}", guard.RequirePage(h.viewFriendPortfolio))

	return mux
}
