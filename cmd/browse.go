package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/myflix/myflix/internal/formatter"
	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/services"
	"github.com/myflix/myflix/internal/shared"
	"github.com/myflix/myflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// BrowseDashboard fetches every category row plus the featured title.
//
// Rows that fail upstream are reported inline and never hide the rows
// that loaded.
func (r *Runner) BrowseDashboard(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	result, err := r.engine.Initialize(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if result.Hero != nil {
		r.writePlainHeader(fmt.Sprintf("Featured: %s (%s)", result.Hero.Title, result.Hero.Year))
	}

	for _, row := range result.Rows {
		r.writePlainln("%s", row.Category)
		if row.Err != nil {
			r.writePlain("  ✗ %s\n", tasks.VisibleError(row.Err))
			continue
		}
		for i, movie := range row.Movies {
			r.writePlain("  %d. %s (%s)\n", i+1, movie.Title, movie.Year)
		}
	}

	return nil
}

// BrowseSearch searches the catalog by title.
func (r *Runner) BrowseSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	outcome := r.engine.RunSearch(ctx, nil, query)

	if outcome.Cleared {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}
	if outcome.Err != nil {
		return fmt.Errorf("search failed: %w", outcome.Err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.SearchResult{Movies: outcome.Movies, TotalResults: outcome.Total}, cmd.Bool("pretty"))
	}

	r.writePlain("Results for '%s' (%s total)\n\n", outcome.Query, outcome.Total)
	for i, movie := range outcome.Movies {
		r.writePlain("%d. %s (%s)\n", i+1, movie.Title, movie.Year)
		r.writePlain("   ID: %s  Type: %s\n", movie.ID, movie.Type)
	}

	return nil
}

// BrowseDetail shows the full record for one title, with fallbacks for
// fields the catalog omits.
func (r *Runner) BrowseDetail(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	id := cmd.String("id")
	detail, err := r.svc.Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch detail: %w", err)
	}

	if cmd.IsSet("export") {
		return r.exportDetail(detail, cmd.String("export"))
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s (%s)", detail.Title, detail.Year))
	r.writePlain("Rated: %s\n", models.OrFallback(detail.Rated, models.FallbackField))
	r.writePlain("Runtime: %s\n", models.OrFallback(detail.Runtime, models.FallbackField))
	r.writePlain("Genre: %s\n", models.OrFallback(detail.Genre, models.FallbackField))
	r.writePlain("Director: %s\n", models.OrFallback(detail.Director, models.FallbackField))
	r.writePlain("Cast: %s\n", models.OrFallback(detail.Actors, models.FallbackField))
	r.writePlain("IMDb Rating: %s\n", models.OrFallback(detail.Rating, models.FallbackField))
	r.writePlainln("%s", models.OrFallback(detail.Plot, models.FallbackPlot))

	return nil
}

// exportDetail writes a markdown bundle (README, poster when available) plus
// a detail.json record for one title. Directory defaults to the IMDb ID.
func (r *Runner) exportDetail(detail *models.MovieDetail, dir string) error {
	result, err := formatter.WriteDetailMarkdown(detail, dir, detail.Poster)
	if err != nil {
		return fmt.Errorf("failed to export detail: %w", err)
	}

	data, err := formatter.ToDetailJSON(*detail)
	if err != nil {
		return fmt.Errorf("failed to encode detail: %w", err)
	}
	jsonPath := filepath.Join(result.Directory, "detail.json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write detail JSON: %w", err)
	}
	result.Files = append(result.Files, jsonPath)

	r.writePlain("✓ Exported %s to %s/\n", detail.Title, result.Directory)
	for _, f := range result.Files {
		r.writePlain("  %s\n", f)
	}

	return nil
}

// BrowsePlay opens the trailer search stream for a title in the system browser.
func (r *Runner) BrowsePlay(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrMissingArgument)
	}

	url := services.TrailerURL(title)

	if cmd.Bool("no-open") {
		r.writePlain("%s\n", url)
		return nil
	}

	r.writePlain("→ Opening trailer search for '%s'...\n", title)
	if err := shared.OpenBrowser(url); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n", url)
	}

	return nil
}

// BrowseExport writes every category row to files in the requested format.
func (r *Runner) BrowseExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output"),
		RateLimit: cmd.Float("rate-limit"),
	}

	r.logger.Info("exporting dashboard rows", "format", opts.Format)

	result, err := r.engine.ExportRows(ctx, nil, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Export complete: %d succeeded, %d failed\n", result.Successful, result.Failed)
	for _, row := range result.Results {
		if row.Success {
			r.writePlain("  ✓ %s → %s (%d titles)\n", row.Category, row.File, row.Titles)
		} else {
			r.writePlain("  ✗ %s: %s\n", row.Category, row.Error)
		}
	}
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	return nil
}
