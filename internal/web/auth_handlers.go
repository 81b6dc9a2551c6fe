package web

import (
	"net/http"
	"time"

	"finnet/internal/middleware"
	"finnet/internal/models"
)

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", page{
		Title:  "Home",
		UserID: middleware.GetUserID(r.Context()),
	})
}

func (h *Handlers) registerForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", page{Title: "Register"})
}

// register creates an account. On any failure no user row is created and
// no session is established.
func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	confirmation := r.PostFormValue("confirmation")

	if username == "" || password == "" || confirmation == "" {
		h.apology(w, r, http.StatusBadRequest, "must provide username and password")
		return
	}
	if password != confirmation {
		h.apology(w, r, http.StatusBadRequest, "passwords do not match")
		return
	}

	user, err := h.authenticator.Register(r.Context(), username, password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", page{Title: "Log In"})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		h.apology(w, r, http.StatusBadRequest, "must provide username and password")
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), username, password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// apiLogin authenticates with a JSON body or form fields and returns a
// bearer token for the JSON endpoints.
func (h *Handlers) apiLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		jsonError(w, http.StatusBadRequest, "must provide username and password")
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), username, password)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		h.logger.Error("Token generation failed", "user_id", user.ID, "error", err)
		jsonError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"user_id": user.ID,
	})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.store.DeleteSession(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("Session delete failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// startSession creates a server-side session row and sets the cookie.
func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	sess := &models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(h.sessionTTL).Unix(),
	}
	if err := h.store.CreateSession(r.Context(), sess); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
