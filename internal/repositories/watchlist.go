package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/shared"
)

// WatchlistRepository implements [models.Repository] for [models.WatchlistItem] persistence.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new [WatchlistRepository] with the given database connection
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create inserts a new watchlist item with generated ID and sequence.
//
// Adding a movie that is already on the list is a no-op: the UNIQUE
// constraint on movie_id is swallowed, matching the card's fire-and-forget
// add-to-list intent.
func (r *WatchlistRepository) Create(item *models.WatchlistItem) error {
	sequence, err := NextSequence(r.db, "watchlist")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	item.SetID(id)
	item.SetSequence(sequence)

	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	movie := item.Movie()
	query := `
		INSERT INTO watchlist (id, sequence, movie_id, title, year, media_type, poster_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, movie.ID, movie.Title, movie.Year, string(movie.Type), movie.Poster, item.CreatedAt(), item.UpdatedAt())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to insert watchlist item: %w", err)
	}

	return nil
}

// Get retrieves a watchlist item by ID, excluding soft-deleted items
func (r *WatchlistRepository) Get(id string) (*models.WatchlistItem, error) {
	query := `
		SELECT id, sequence, movie_id, title, year, media_type, poster_url, created_at, updated_at, deleted_at
		FROM watchlist
		WHERE id = ? AND deleted_at IS NULL
	`

	item, err := scanWatchlistItem(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("watchlist item not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist item: %w", err)
	}

	return item, nil
}

// GetByMovieID retrieves a watchlist item by its catalog ID, excluding
// soft-deleted items.
func (r *WatchlistRepository) GetByMovieID(movieID string) (*models.WatchlistItem, error) {
	query := `
		SELECT id, sequence, movie_id, title, year, media_type, poster_url, created_at, updated_at, deleted_at
		FROM watchlist
		WHERE movie_id = ? AND deleted_at IS NULL
	`

	item, err := scanWatchlistItem(r.db.QueryRow(query, movieID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, movieID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist item: %w", err)
	}

	return item, nil
}

// Update modifies an existing watchlist item in the database
func (r *WatchlistRepository) Update(item *models.WatchlistItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	item.SetUpdatedAt(now)

	movie := item.Movie()
	query := `
		UPDATE watchlist
		SET title = ?, year = ?, media_type = ?, poster_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, movie.Title, movie.Year, string(movie.Type), movie.Poster, now, item.ID())
	if err != nil {
		return fmt.Errorf("failed to update watchlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watchlist item not found or already deleted: %s", item.ID())
	}

	return nil
}

// Delete soft-deletes a watchlist item by ID
func (r *WatchlistRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE watchlist
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watchlist item not found or already deleted: %s", id)
	}

	return nil
}

// DeleteByMovieID soft-deletes a watchlist item by its catalog ID.
func (r *WatchlistRepository) DeleteByMovieID(movieID string) error {
	item, err := r.GetByMovieID(movieID)
	if err != nil {
		return err
	}
	return r.Delete(item.ID())
}

// List retrieves all watchlist items matching the given criteria, excluding soft-deleted items
func (r *WatchlistRepository) List(criteria map[string]any) ([]*models.WatchlistItem, error) {
	query := `
		SELECT id, sequence, movie_id, title, year, media_type, poster_url, created_at, updated_at, deleted_at
		FROM watchlist
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if mediaType, ok := criteria["media_type"].(string); ok && mediaType != "" {
		query += " AND media_type = ?"
		args = append(args, mediaType)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var items []*models.WatchlistItem
	for rows.Next() {
		item, err := scanWatchlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanWatchlistItem(s scanner) (*models.WatchlistItem, error) {
	var (
		id        string
		sequence  int
		movieID   string
		title     string
		year      string
		mediaType string
		posterURL string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &movieID, &title, &year, &mediaType, &posterURL, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	item := models.NewWatchlistItem(sequence, models.Movie{
		ID:     movieID,
		Title:  title,
		Year:   year,
		Type:   models.MediaType(mediaType),
		Poster: posterURL,
	})
	item.SetID(id)
	item.SetCreatedAt(createdAt)
	item.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		item.SetDeletedAt(&deletedAt.Time)
	}

	return item, nil
}
