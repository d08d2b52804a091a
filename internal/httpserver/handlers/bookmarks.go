package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/linkstash/linkstash/internal/domain"
	"github.com/linkstash/linkstash/internal/httpserver/deps"
	"github.com/linkstash/linkstash/internal/httpserver/mw"
	"github.com/linkstash/linkstash/internal/ingest"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/store"
)

type createBookmarkRequest struct {
	URL string `json:"url"`
}

// ListBookmarks returns all bookmarks owned by the caller.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		bookmarks, err := d.Bookmarks.ListByOwner(r.Context(), userID)
		if err != nil {
			d.Logger.Error("failed to list bookmarks",
				logger.Int64("user_id", userID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to get bookmarks")
			return
		}

		writeJSON(w, http.StatusOK, bookmarks)
	}
}

// CreateBookmark validates the submitted URL, runs the ingestion
// pipeline and returns the stored bookmark.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req createBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		bookmark, err := d.Ingest.Create(r.Context(), userID, req.URL)
		if err != nil {
			switch {
			case errors.Is(err, ingest.ErrInvalidURL):
				writeError(w, http.StatusBadRequest, "Invalid URL")
			case r.Context().Err() != nil:
				// Client went away mid-ingestion; nothing was stored
				// and there is nobody left to answer.
			default:
				d.Logger.Error("failed to create bookmark",
					logger.Int64("user_id", userID),
					logger.Error(err))
				writeError(w, http.StatusInternalServerError, "Failed to create bookmark")
			}
			return
		}

		writeJSON(w, http.StatusCreated, bookmark)
	}
}

// GetBookmark returns one bookmark if the caller owns it.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmark, ok := loadOwnedBookmark(w, r, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, bookmark)
	}
}

// DeleteBookmark removes one bookmark if the caller owns it.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmark, ok := loadOwnedBookmark(w, r, d)
		if !ok {
			return
		}

		if err := d.Bookmarks.Delete(r.Context(), bookmark.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Bookmark not found")
				return
			}
			d.Logger.Error("failed to delete bookmark",
				logger.Int64("bookmark_id", bookmark.ID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete bookmark")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// loadOwnedBookmark parses the id path parameter, looks the record up
// and gates disclosure on ownership: the lookup happens first, then the
// ownership check decides between 404 and 403.
func loadOwnedBookmark(w http.ResponseWriter, r *http.Request, d deps.Deps) (*domain.Bookmark, bool) {
	userID, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid bookmark ID")
		return nil, false
	}

	bookmark, err := d.Bookmarks.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Bookmark not found")
			return nil, false
		}
		d.Logger.Error("failed to get bookmark",
			logger.Int64("bookmark_id", id),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get bookmark")
		return nil, false
	}

	if bookmark.UserID != userID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}

	return bookmark, true
}
