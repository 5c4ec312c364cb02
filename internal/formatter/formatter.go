// package formatter provides functions to export movie lists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/shared"
)

// ExportToCSV converts a movie list to CSV format with columns: ID, Title, Year, Type, Poster
func ExportToCSV(title string, movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Type", "Poster"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		poster := movie.Poster
		if !movie.HasPoster() {
			poster = ""
		}
		record := []string{
			movie.ID,
			movie.Title,
			movie.Year,
			string(movie.Type),
			poster,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a movie list to Markdown format with the source keyword noted
func ExportToMarkdown(title string, keyword string, movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	if keyword != "" {
		buf.WriteString(fmt.Sprintf("**Keyword**: %s\n", keyword))
	}
	buf.WriteString(fmt.Sprintf("**Titles**: %d\n\n", len(movies)))

	buf.WriteString("## Titles\n\n")
	for i, movie := range movies {
		typePart := ""
		if movie.Type != "" {
			typePart = fmt.Sprintf(" (%s)", movie.Type)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%s]\n", i+1, movie.Title, typePart, movie.Year))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a movie list to plain text format
func ExportToText(title string, movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Category: %s\n", title))
	buf.WriteString(fmt.Sprintf("Titles: %d\n\n", len(movies)))

	for i, movie := range movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, movie.Title, movie.Year))
	}

	return buf.Bytes(), nil
}

// DownloadPoster downloads a poster image from the given URL and returns the raw bytes
func DownloadPoster(url string) ([]byte, error) {
	if url == "" || url == models.NoPoster {
		return nil, fmt.Errorf("no poster URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download poster: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read poster data: %w", err)
	}

	return imageData, nil
}

// ToDetailJSON generates a JSON representation of a movie detail record
func ToDetailJSON(detail models.MovieDetail) ([]byte, error) {
	return shared.MarshalJSON(detail, true)
}

// MarkdownDetailResult contains information about files created by WriteDetailMarkdown
type MarkdownDetailResult struct {
	Directory string
	Files     []string
	Poster    string
}

// WriteDetailMarkdown exports a single movie detail to Markdown in a dedicated directory.
//
// Directory name defaults to the IMDb ID.
// The posterURL parameter is optional. If provided, attempts to download the poster.
// Creates a directory structure: {dir}/README.md and optionally {dir}/poster.jpg
func WriteDetailMarkdown(detail *models.MovieDetail, outputDir string, posterURL string) (*MarkdownDetailResult, error) {
	if outputDir == "" {
		outputDir = detail.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownDetailResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var posterFilename string
	if posterURL != "" && posterURL != models.NoPoster {
		imageData, err := DownloadPoster(posterURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download poster: %v\n", err)
		} else {
			posterFilename = "poster.jpg"
			posterPath := fmt.Sprintf("%s/%s", outputDir, posterFilename)
			if err := os.WriteFile(posterPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save poster: %v\n", err)
				posterFilename = ""
			} else {
				result.Poster = posterPath
				result.Files = append(result.Files, posterPath)
			}
		}
	}

	mdData, err := DetailToMarkdown(detail, posterFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// DetailToMarkdown converts a movie detail record to Markdown with optional poster image
func DetailToMarkdown(detail *models.MovieDetail, posterFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s (%s)\n\n", detail.Title, detail.Year))

	if posterFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", posterFilename))
	}

	buf.WriteString(fmt.Sprintf("**Rated**: %s\n", models.OrFallback(detail.Rated, models.FallbackField)))
	buf.WriteString(fmt.Sprintf("**Runtime**: %s\n", models.OrFallback(detail.Runtime, models.FallbackField)))
	buf.WriteString(fmt.Sprintf("**Genre**: %s\n", models.OrFallback(detail.Genre, models.FallbackField)))
	buf.WriteString(fmt.Sprintf("**Director**: %s\n", models.OrFallback(detail.Director, models.FallbackField)))
	buf.WriteString(fmt.Sprintf("**Actors**: %s\n", models.OrFallback(detail.Actors, models.FallbackField)))
	buf.WriteString(fmt.Sprintf("**IMDb Rating**: %s\n\n", models.OrFallback(detail.Rating, models.FallbackField)))

	buf.WriteString("## Plot\n\n")
	buf.WriteString(models.OrFallback(detail.Plot, models.FallbackPlot))
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

// WriteTextExport exports a movie list to plain text format.
//
// Defaults to {title}_titles.txt as the filename.
func WriteTextExport(title string, movies []models.Movie, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_titles.txt", title)
	}

	textData, err := ExportToText(title, movies)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
