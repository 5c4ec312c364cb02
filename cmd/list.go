package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/repositories"
	"github.com/myflix/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// ListAdd fetches a title's summary and adds it to the watchlist.
//
// Adding a title that is already on the list is a no-op.
func (r *Runner) ListAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if r.db == nil {
		return fmt.Errorf("%w: database not initialized, run 'myflix setup database'", shared.ErrServiceUnavailable)
	}

	id := cmd.String("id")
	detail, err := r.svc.Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch title: %w", err)
	}

	movie := models.Movie{
		ID:    detail.ID,
		Title: detail.Title,
		Year:  detail.Year,
		Type:  models.MediaMovie,
	}

	repo := repositories.NewWatchlistRepository(r.db)
	item := models.NewWatchlistItem(0, movie)
	if err := repo.Create(item); err != nil {
		return fmt.Errorf("failed to add to watchlist: %w", err)
	}

	r.logger.Info("added to watchlist", "id", movie.ID, "title", movie.Title)
	r.writePlain("✓ Added '%s' to your list\n", movie.Title)
	return nil
}

// ListRemove soft-deletes a title from the watchlist.
func (r *Runner) ListRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if r.db == nil {
		return fmt.Errorf("%w: database not initialized, run 'myflix setup database'", shared.ErrServiceUnavailable)
	}

	id := cmd.String("id")
	repo := repositories.NewWatchlistRepository(r.db)
	if err := repo.DeleteByMovieID(id); err != nil {
		if errors.Is(err, shared.ErrMovieNotFound) {
			r.writePlain("'%s' is not on your list\n", id)
			return nil
		}
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}

	r.writePlain("✓ Removed %s from your list\n", id)
	return nil
}

// ListShow prints the watchlist in insertion order.
func (r *Runner) ListShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if r.db == nil {
		return fmt.Errorf("%w: database not initialized, run 'myflix setup database'", shared.ErrServiceUnavailable)
	}

	criteria := map[string]any{}
	if mediaType := cmd.String("type"); mediaType != "" {
		if !models.MediaType(mediaType).Valid() {
			return fmt.Errorf("%w: unknown media type %q", shared.ErrInvalidFlag, mediaType)
		}
		criteria["media_type"] = mediaType
	}

	repo := repositories.NewWatchlistRepository(r.db)
	items, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to load watchlist: %w", err)
	}

	if cmd.Bool("json") {
		movies := make([]models.Movie, len(items))
		for i, item := range items {
			movies[i] = item.Movie()
		}
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		r.writePlain("Your list is empty\n")
		return nil
	}

	r.writePlainHeader("My List")
	for i, item := range items {
		movie := item.Movie()
		r.writePlain("%d. %s (%s)\n", i+1, movie.Title, movie.Year)
		r.writePlain("   ID: %s  Added: %s\n", movie.ID, item.CreatedAt().Format("2006-01-02"))
	}

	return nil
}
