package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"finnet/internal/middleware"
	"finnet/internal/service"
	"finnet/internal/storage"
)

func (h *Handlers) createPortfolioForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "create_portfolio.html", page{
		Title:  "Create Portfolio",
		UserID: middleware.GetUserID(r.Context()),
	})
}

func (h *Handlers) createPortfolio(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")

	if _, err := h.portfolios.Create(r.Context(), middleware.GetUserID(r.Context()), name); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) addInvestmentForm(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := pathID(r, "portfolio_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "portfolio not found")
		return
	}
	h.render(w, r, http.StatusOK, "add_investment.html", page{
		Title:  "Add Investment",
		UserID: middleware.GetUserID(r.Context()),
		Data:   portfolioID,
	})
}

// addInvestment validates the form and records the holding. The quantity
// must parse as a positive whole number and the symbol must resolve to a
// live price before any row is inserted.
func (h *Handlers) addInvestment(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := pathID(r, "portfolio_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "portfolio not found")
		return
	}

	symbol := r.PostFormValue("symbol")
	quantityRaw := r.PostFormValue("quantity")
	if symbol == "" || quantityRaw == "" {
		h.apology(w, r, http.StatusBadRequest, "symbol and quantity required")
		return
	}

	quantity, err := strconv.ParseInt(quantityRaw, 10, 64)
	if err != nil {
		h.fail(w, r, service.ErrInvalidQuantity)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if _, err := h.portfolios.AddInvestment(r.Context(), userID, portfolioID, symbol, quantity); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/view_portfolio/%d", portfolioID), http.StatusSeeOther)
}

func (h *Handlers) viewPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := pathID(r, "portfolio_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "portfolio not found")
		return
	}

	view, err := h.portfolios.View(r.Context(), middleware.GetUserID(r.Context()), portfolioID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "view_portfolio.html", page{
		Title:  view.Portfolio.Name,
		UserID: middleware.GetUserID(r.Context()),
		Data:   view,
	})
}

func (h *Handlers) myPortfolios(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.portfolios.Summaries(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "my_portfolios.html", page{
		Title:  "My Portfolios",
		UserID: userID,
		Data:   summaries,
	})
}

func (h *Handlers) postPortfolioForm(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := pathID(r, "portfolio_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "portfolio not found")
		return
	}
	h.render(w, r, http.StatusOK, "post_portfolio.html", page{
		Title:  "Share Portfolio",
		UserID: middleware.GetUserID(r.Context()),
		Data:   portfolioID,
	})
}

func (h *Handlers) postPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := pathID(r, "portfolio_id")
	if err != nil {
		h.apology(w, r, http.StatusNotFound, "portfolio not found")
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/view_portfolio/%d", portfolioID), http.StatusSeeOther)
}

// getStockPrice is the JSON price lookup.
func (h *Handlers) getStockPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.portfolios.Price(r.Context(), r.PathValue("symbol"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "unable to fetch stock price")
		return
	}
	// JSON numbers, not decimal strings, on the wire.
	writeJSON(w, http.StatusOK, map[string]any{"price": price.InexactFloat64()})
}

// getPortfolioValue is the JSON aggregate valuation. Investments whose
// lookup failed count as zero here, unlike the per-line HTML view.
func (h *Handlers) getPortfolioValue(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := pathID(r, "portfolio_id")
	if err != nil {
		jsonError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	total, err := h.portfolios.TotalValue(r.Context(), middleware.GetUserID(r.Context()), portfolioID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			jsonError(w, http.StatusNotFound, "portfolio not found")
		case errors.Is(err, service.ErrForbidden):
			jsonError(w, http.StatusForbidden, service.ErrForbidden.Error())
		default:
			h.logger.Error("Portfolio valuation failed", "portfolio_id", portfolioID, "error", err)
			jsonError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"total_value": total.InexactFloat64()})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
