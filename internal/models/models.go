package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// MediaType enumerates the catalog media kinds the API reports.
type MediaType string

const (
	MediaMovie   MediaType = "movie"
	MediaSeries  MediaType = "series"
	MediaEpisode MediaType = "episode"
)

// Valid reports whether the media type is one the API documents.
func (t MediaType) Valid() bool {
	switch t {
	case MediaMovie, MediaSeries, MediaEpisode:
		return true
	}
	return false
}

// NoPoster is the sentinel the API returns when a title has no poster art.
const NoPoster = "N/A"

// Movie is a single catalog entry from a title search.
//
// Immutable once fetched; identity is ID (unique per title+year+medium).
type Movie struct {
	ID     string    `json:"imdbID"`
	Title  string    `json:"Title"`
	Year   string    `json:"Year"`
	Type   MediaType `json:"Type"`
	Poster string    `json:"Poster"`
}

// HasPoster reports whether the movie carries real poster art rather than the
// "N/A" sentinel.
func (m Movie) HasPoster() bool {
	return m.Poster != "" && m.Poster != NoPoster
}

// MovieDetail is the supplemental record fetched lazily per catalog ID.
//
// Every field is optional; absent fields stay "" and rendering layers
// substitute a fixed fallback string. Never cached: each detail open
// re-fetches.
type MovieDetail struct {
	ID       string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Runtime  string `json:"Runtime"`
	Plot     string `json:"Plot"`
	Actors   string `json:"Actors"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Awards   string `json:"Awards"`
	Rating   string `json:"imdbRating"`
	Poster   string `json:"Poster"`
}

// Fallback strings used when detail fields are absent, matching what the
// modal renders.
const (
	FallbackPlot  = "No plot description available."
	FallbackField = "Information not available"
)

// OrFallback returns s, or fallback when s is empty or the "N/A" sentinel.
func OrFallback(s, fallback string) string {
	if s == "" || s == NoPoster {
		return fallback
	}
	return s
}

// SearchResult is a successful search response: an ordered sequence of
// movies plus the API's total-count string. Zero movies is a valid "no
// results" outcome, not an error.
type SearchResult struct {
	Movies       []Movie
	TotalResults string
}

// User is the mock registered-user record.
//
// The password is stored in plaintext on purpose: the whole session layer is
// an explicitly insecure mock, retained for behavioral fidelity.
type User struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the signup form rules: name at least 2 characters,
// well-formed email, password at least 8 characters.
func (u User) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(u.FullName)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("invalid email address")
	}
	if len(u.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// SessionState is the tab-lifetime authentication state.
type SessionState struct {
	User          *User
	Authenticated bool
}

// WatchlistItem is a movie saved to the local "My List".
type WatchlistItem struct {
	id        string
	sequence  int
	movie     Movie
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

var _ Model = (*WatchlistItem)(nil)

// NewWatchlistItem creates a watchlist entry for the given movie.
func NewWatchlistItem(sequence int, movie Movie) *WatchlistItem {
	now := time.Now()
	return &WatchlistItem{
		sequence:  sequence,
		movie:     movie,
		createdAt: now,
		updatedAt: now,
	}
}

func (w *WatchlistItem) ID() string           { return w.id }
func (w *WatchlistItem) Sequence() int        { return w.sequence }
func (w *WatchlistItem) Movie() Movie         { return w.movie }
func (w *WatchlistItem) CreatedAt() time.Time { return w.createdAt }
func (w *WatchlistItem) UpdatedAt() time.Time { return w.updatedAt }
func (w *WatchlistItem) DeletedAt() *time.Time {
	return w.deletedAt
}

func (w *WatchlistItem) SetID(id string)           { w.id = id }
func (w *WatchlistItem) SetSequence(seq int)       { w.sequence = seq }
func (w *WatchlistItem) SetCreatedAt(t time.Time)  { w.createdAt = t }
func (w *WatchlistItem) SetUpdatedAt(t time.Time)  { w.updatedAt = t }
func (w *WatchlistItem) SetDeletedAt(t *time.Time) { w.deletedAt = t }

// Validate checks the entry references a plausible movie.
func (w *WatchlistItem) Validate() error {
	if w.movie.ID == "" {
		return fmt.Errorf("watchlist item requires a movie ID")
	}
	if w.movie.Title == "" {
		return fmt.Errorf("watchlist item requires a title")
	}
	return nil
}
