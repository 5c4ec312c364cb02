package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/myflix/myflix/internal/formatter"
	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for dashboard row exports.
type ExportOpts struct {
	Format    string  // Export format: json, csv, markdown, txt
	OutputDir string  // Base output directory (default: myflix_export_{epoch})
	RateLimit float64 // Requests per second against the metadata API (default: 2)
}

// RowExportResult records the outcome of exporting one category row.
type RowExportResult struct {
	Category Category `json:"category"`
	Keyword  string   `json:"keyword"`
	File     string   `json:"file,omitempty"`
	Titles   int      `json:"titles"`
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
}

// ExportResult summarizes a full dashboard export.
type ExportResult struct {
	OutputDirectory string            `json:"output_directory"`
	Successful      int               `json:"successful"`
	Failed          int               `json:"failed"`
	Results         []RowExportResult `json:"results"`
	ManifestPath    string            `json:"-"`
}

// ExportRows fetches every category row (rate limited) and writes each to a
// file in the requested format, plus a JSON manifest.
//
// Per-row failures are recorded and never abort the remaining rows.
func (e *DashboardEngine) ExportRows(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("myflix_export_%d", time.Now().Unix())
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		OutputDirectory: opts.OutputDir,
		Results:         make([]RowExportResult, 0, len(Categories)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	total := len(Categories)

	for i, category := range Categories {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("export interrupted: %w", err)
		}

		e.sendProgress(progress, exportingRowUpdate(i+1, total, category))

		res := RowExportResult{Category: category, Keyword: category.Keyword()}

		search, err := e.svc.Search(ctx, category.Keyword())
		if err != nil {
			res.Error = err.Error()
			result.Failed++
			result.Results = append(result.Results, res)
			e.sendProgress(progress, exportFailedUpdate(i+1, total, category, err))
			continue
		}

		path, err := e.writeRow(category, search.Movies, opts)
		if err != nil {
			res.Error = err.Error()
			result.Failed++
			result.Results = append(result.Results, res)
			e.sendProgress(progress, exportFailedUpdate(i+1, total, category, err))
			continue
		}

		res.File = path
		res.Titles = len(search.Movies)
		res.Success = true
		result.Successful++
		result.Results = append(result.Results, res)
		e.sendProgress(progress, exportedRowUpdate(i+1, total, category, path))
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// writeRow formats one category's movies and writes them to disk.
func (e *DashboardEngine) writeRow(category Category, movies []models.Movie, opts ExportOpts) (string, error) {
	base := strings.ToLower(category.String())

	switch opts.Format {
	case "csv":
		data, err := formatter.ExportToCSV(category.String(), movies)
		if err != nil {
			return "", err
		}
		path := filepath.Join(opts.OutputDir, base+".csv")
		return path, os.WriteFile(path, data, 0644)

	case "markdown", "md":
		data, err := formatter.ExportToMarkdown(category.String(), category.Keyword(), movies)
		if err != nil {
			return "", err
		}
		path := filepath.Join(opts.OutputDir, base+".md")
		return path, os.WriteFile(path, data, 0644)

	case "txt":
		path := filepath.Join(opts.OutputDir, base+".txt")
		return formatter.WriteTextExport(category.String(), movies, path)

	case "json":
		fallthrough
	default:
		data, err := shared.MarshalJSON(movies, true)
		if err != nil {
			return "", err
		}
		path := filepath.Join(opts.OutputDir, base+".json")
		return path, os.WriteFile(path, data, 0644)
	}
}
