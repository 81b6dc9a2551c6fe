package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"finnet/internal/auth"
	"finnet/internal/service"
	"finnet/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// page is the data handed to every template.
type page struct {
	Title  string
	UserID int64
	Data   any
}

// errorPage backs the apology template.
type errorPage struct {
	Code    int
	Message string
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		h.logger.Error("Template parse failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", p); err != nil {
		h.logger.Error("Template render failed", "template", name, "error", err)
	}
}

// apology renders the user-visible error page, original-flavored: the
// status on top, the message below.
func (h *Handlers) apology(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "apology.html", page{
		Title: fmt.Sprintf("Error %d", status),
		Data:  errorPage{Code: status, Message: message},
	})
}

// fail maps a domain error onto the apology page. Internal errors are
// logged and shown with a generic message.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		message = "something went wrong"
	}
	h.apology(w, r, status, message)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor translates domain errors into HTTP statuses: validation 400,
// not-found 404, access denied 403, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrPortfolioNameRequired),
		errors.Is(err, service.ErrSymbolRequired),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownSymbol),
		errors.Is(err, service.ErrFriendshipExists),
		errors.Is(err, auth.ErrUsernameExists),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
