package domain

import "time"

// Bookmark is a saved URL enriched with metadata fetched at creation time.
// Title, Favicon and Summary may hold degraded fallback values when the
// enrichment services were unreachable; they are never absent.
type Bookmark struct {
	// ID is assigned by the store on insert. Monotonic, never reused.
	ID int64 `json:"id"`

	// UserID is the owner. Immutable after creation.
	UserID int64 `json:"userId"`

	// URL is the normalized absolute URL the user saved.
	URL string `json:"url"`

	// Title is the page title, or a fallback derived from the hostname.
	Title string `json:"title"`

	// Favicon is an absolute icon URL, or "" when no icon could be resolved.
	Favicon string `json:"favicon"`

	// Summary is the generated text summary, or a fallback placeholder.
	Summary string `json:"summary"`

	// CreatedAt is assigned by the store on insert. Immutable.
	CreatedAt time.Time `json:"createdAt"`
}
