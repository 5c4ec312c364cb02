// package tasks implements the dashboard orchestration over the metadata
// service.
//
// The core abstraction is DashboardEngine, which coordinates the concurrent
// category-row fetches, the hero pick, and generation-tagged keyword search.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/services"
	"github.com/myflix/myflix/internal/shared"
)

// Category identifies one curated dashboard row.
type Category int

const (
	Trending Category = iota
	Action
	Horror
	Comedy
)

func (c Category) String() string {
	switch c {
	case Trending:
		return "Trending"
	case Action:
		return "Action"
	case Horror:
		return "Horror"
	case Comedy:
		return "Comedy"
	default:
		return ""
	}
}

// Keyword returns the fixed search term standing in for the category. The
// API only supports free-text search, so these are keyword proxies, not a
// genre taxonomy. Trending proxies to the app's historical home query.
func (c Category) Keyword() string {
	switch c {
	case Trending:
		return "batman"
	case Action:
		return "action"
	case Horror:
		return "horror"
	case Comedy:
		return "comedy"
	default:
		return ""
	}
}

// Categories lists the dashboard rows in render order.
var Categories = []Category{Trending, Action, Horror, Comedy}

// CategoryRow is one independently-resolved dashboard row.
//
// Rows fail independently: Err set on one row never blanks the others.
type CategoryRow struct {
	Category Category
	Keyword  string
	Movies   []models.Movie
	Err      error
}

// BrowseResult contains everything the browse mode renders.
type BrowseResult struct {
	Rows []CategoryRow
	Hero *models.Movie // random pick from the trending row; nil when it failed or is empty
}

// SearchOutcome is the settled result of one RunSearch invocation, tagged
// with the generation current when the search was issued.
type SearchOutcome struct {
	Generation uint64
	Query      string
	Cleared    bool // empty query: revert to browsing, nothing was fetched
	Movies     []models.Movie
	Total      string
	Err        error
}

// VisibleError converts a search failure into the single user-visible string
// the view renders: the API's own message verbatim for failure envelopes, a
// generic message for transport errors.
func VisibleError(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *shared.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Failed to fetch movies"
}

// DashboardEngine coordinates dashboard data loading.
//
// It holds no view state; callers own that. What it does own is the search
// generation counter, so stale outcomes can be recognized and discarded.
type DashboardEngine struct {
	svc        services.Service
	generation atomic.Uint64
}

// NewDashboardEngine creates a new DashboardEngine over the given metadata
// service.
func NewDashboardEngine(svc services.Service) *DashboardEngine {
	return &DashboardEngine{svc: svc}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *DashboardEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Initialize issues all category searches concurrently and joins them into a
// BrowseResult.
//
// Each row resolves independently; a failed category carries its own error
// while the other rows still populate. The hero is a uniform random pick from
// the trending row on every call, intentionally unstable across runs.
func (e *DashboardEngine) Initialize(ctx context.Context, progress chan<- ProgressUpdate) (*BrowseResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	rows := make([]CategoryRow, len(Categories))
	total := len(Categories)

	var wg sync.WaitGroup
	for i, category := range Categories {
		rows[i] = CategoryRow{Category: category, Keyword: category.Keyword()}

		wg.Add(1)
		go func(i int, category Category) {
			defer wg.Done()

			e.sendProgress(progress, fetchRowUpdate(i+1, total, category))
			result, err := e.svc.Search(ctx, category.Keyword())
			if err != nil {
				rows[i].Err = err
				e.sendProgress(progress, rowFailedUpdate(i+1, total, category, err))
				return
			}

			rows[i].Movies = result.Movies
			e.sendProgress(progress, rowLoadedUpdate(i+1, total, category, len(result.Movies)))
		}(i, category)
	}
	wg.Wait()

	browse := &BrowseResult{Rows: rows}

	trending := rows[0]
	if trending.Err == nil && len(trending.Movies) > 0 {
		// Top-level rand is safe for engines shared across concurrent requests.
		hero := trending.Movies[rand.Intn(len(trending.Movies))]
		browse.Hero = &hero
		e.sendProgress(progress, heroPickedUpdate(hero.Title))
	}

	return browse, nil
}

// CurrentGeneration returns the generation of the most recently issued
// search. An outcome is stale when its Generation no longer matches.
func (e *DashboardEngine) CurrentGeneration() uint64 {
	return e.generation.Load()
}

// Latest reports whether the outcome is from the most recently issued search.
func (e *DashboardEngine) Latest(outcome *SearchOutcome) bool {
	return outcome != nil && outcome.Generation == e.generation.Load()
}

// RunSearch performs one keyword search invocation.
//
// An empty or whitespace query never touches the network: it returns a
// cleared outcome reverting the view to browsing. Every invocation bumps the
// generation counter, so a slow earlier call can no longer overwrite a faster
// later one; callers apply an outcome only while Latest still holds.
func (e *DashboardEngine) RunSearch(ctx context.Context, progress chan<- ProgressUpdate, query string) *SearchOutcome {
	gen := e.generation.Add(1)

	if strings.TrimSpace(query) == "" {
		return &SearchOutcome{Generation: gen, Cleared: true}
	}

	if e.svc == nil {
		return &SearchOutcome{
			Generation: gen,
			Query:      query,
			Err:        fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable),
		}
	}

	e.sendProgress(progress, searchingUpdate(query))

	result, err := e.svc.Search(ctx, query)
	if err != nil {
		return &SearchOutcome{Generation: gen, Query: query, Err: err}
	}

	e.sendProgress(progress, searchSettledUpdate(query, len(result.Movies)))
	return &SearchOutcome{
		Generation: gen,
		Query:      query,
		Movies:     result.Movies,
		Total:      result.TotalResults,
	}
}

// FetchDetail loads the supplemental record for a movie.
//
// A detail failure must not invalidate the summary already on screen, so the
// caller keeps rendering the summary and substitutes fallback strings.
func (e *DashboardEngine) FetchDetail(ctx context.Context, progress chan<- ProgressUpdate, movie models.Movie) (*models.MovieDetail, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchDetailUpdate(movie.Title))
	return e.svc.Detail(ctx, movie.ID)
}
