package web

import (
	"net/http"

	"finnet/internal/middleware"
	"finnet/internal/models"
	"finnet/internal/service"
)

func (h *Handlers) addFriendForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "add_friend.html", page{
		Title:  "Add Friend",
		UserID: middleware.GetUserID(r.Context()),
	})
}

func (h *Handlers) addFriend(w http.ResponseWriter, r *http.Request) {
	friendUsername := r.PostFormValue("friend_username")
	if friendUsername == "" {
		h.apology(w, r, http.StatusBadRequest, "must provide a username")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if _, err := h.friends.AddFriend(r.Context(), userID, friendUsername); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/view_friends", http.StatusSeeOther)
}

func (h *Handlers) viewFriends(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	friends, err := h.friends.Friends(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "view_friends.html", page{
		Title:  "Friends",
		UserID: userID,
		Data:   friends,
	})
}

// friendPortfoliosPage backs the per-friend portfolio listing.
type friendPortfoliosPage struct {
	Friend     *models.User
	Portfolios []service.PortfolioSummary
}

func (h *Handlers) viewFriendPortfolios(w http.ResponseWriter, r *http.Request) {
	friendID, err := pathID(r, "friend_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "friend not found")
		return
	}

	userID := middleware.GetUserID(r.Context())
	friend, summaries, err := h.friends.FriendPortfolios(r.Context(), userID, friendID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "view_friend_portfolios.html", page{
		Title:  friend.Username + "'s Portfolios",
		UserID: userID,
		Data:   friendPortfoliosPage{Friend: friend, Portfolios: summaries},
	})
}

// friendPortfolioPage backs a single friend portfolio view.
type friendPortfolioPage struct {
	Friend *models.User
	View   *service.PortfolioView
}

func (h *Handlers) viewFriendPortfolio(w http.ResponseWriter, r *http.Request) {
	friendID, err := pathID(r, "friend_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "friend not found")
		return
	}
	portfolioID, err := pathID(r, "portfolio_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "portfolio not found")
		return
	}

	userID := middleware.GetUserID(r.Context())
	friend, view, err := h.friends.FriendPortfolio(r.Context(), userID, friendID, portfolioID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "view_friend_portfolio.html", page{
		Title:  view.Portfolio.Name,
		UserID: userID,
		Data:   friendPortfolioPage{Friend: friend, View: view},
	})
}
