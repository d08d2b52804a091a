package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkstash/linkstash/internal/domain"
	"github.com/linkstash/linkstash/internal/httpserver/deps"
	"github.com/linkstash/linkstash/internal/httpserver/mw"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/session"
	"github.com/linkstash/linkstash/internal/store"
)

const minPasswordLen = 8

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and signs the new user in.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		email := strings.TrimSpace(req.Email)
		if !strings.Contains(email, "@") {
			writeError(w, http.StatusBadRequest, "Invalid email")
			return
		}
		if len(req.Password) < minPasswordLen {
			writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			d.Logger.Error("failed to hash password", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to register")
			return
		}

		user, err := d.Users.Create(r.Context(), email, string(hash))
		if err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				writeError(w, http.StatusConflict, "Email already registered")
				return
			}
			d.Logger.Error("failed to create user", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to register")
			return
		}

		if err := startSession(w, r, d, user); err != nil {
			d.Logger.Error("failed to start session after register",
				logger.Int64("user_id", user.ID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to register")
			return
		}

		d.Logger.Info("user registered",
			logger.Int64("user_id", user.ID))
		writeJSON(w, http.StatusCreated, user)
	}
}

// Login verifies credentials and issues a session cookie. The response
// never reveals whether the email or the password was wrong.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := d.Users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		if err := startSession(w, r, d, user); err != nil {
			d.Logger.Error("failed to start session",
				logger.Int64("user_id", user.ID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to log in")
			return
		}

		d.Logger.Info("user logged in",
			logger.Int64("user_id", user.ID))
		writeJSON(w, http.StatusOK, user)
	}
}

// Logout deletes the caller's session and expires the cookie.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(d.SessionCookie); err == nil && cookie.Value != "" {
			if err := d.Sessions.Delete(r.Context(), cookie.Value); err != nil {
				d.Logger.Warn("failed to delete session on logout",
					logger.Error(err))
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     d.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   d.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// CurrentUser returns the authenticated caller's account.
func CurrentUser(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := d.Users.GetByID(r.Context(), userID)
		if err != nil {
			// Session outlived the account (volatile store restarts).
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func startSession(w http.ResponseWriter, r *http.Request, d deps.Deps, user *domain.User) error {
	token, err := session.NewToken()
	if err != nil {
		return err
	}
	if err := d.Sessions.Put(r.Context(), token, user.ID, d.SessionTTL); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     d.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(d.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   d.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
