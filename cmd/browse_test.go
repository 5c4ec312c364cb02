package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/services"
	"github.com/myflix/myflix/internal/session"
	"github.com/myflix/myflix/internal/shared"
	tu "github.com/myflix/myflix/internal/testing"
	"github.com/urfave/cli/v3"
)

// newLoggedInRunner builds a Runner over the given mock service with an
// authenticated session, returning the runner and its captured output.
func newLoggedInRunner(t *testing.T, svc services.Service) (*Runner, *bytes.Buffer) {
	t.Helper()

	sessions := session.NewManager(tu.NewMockStore(), shared.NewLogger(nil))
	user := models.User{FullName: "Ada Lovelace", Email: "ada@example.com", Password: "password123"}
	if err := sessions.Signup(user); err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	if err := sessions.Login(user.Email, user.Password); err != nil {
		t.Fatalf("failed to log in: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Service:  svc,
		Sessions: sessions,
		Output:   output,
	})
	return runner, output
}

// runCommand drives the full command tree the way main does.
func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	root := &cli.Command{
		Name:     "myflix",
		Commands: runner.register(),
	}
	return root.Run(context.Background(), append([]string{"myflix"}, args...))
}

func TestBrowseCommands(t *testing.T) {
	t.Run("Search", func(t *testing.T) {
		t.Run("Prints The Total Count As Reported", func(t *testing.T) {
			svc := &tu.MockService{
				SearchFunc: func(ctx context.Context, query string) (*models.SearchResult, error) {
					return &models.SearchResult{
						Movies:       []models.Movie{{ID: "tt0078748", Title: "Alien", Year: "1979", Type: models.MediaMovie}},
						TotalResults: "42",
					}, nil
				},
			}
			runner, output := newLoggedInRunner(t, svc)

			if err := runCommand(t, runner, "browse", "search", "alien"); err != nil {
				t.Fatalf("search failed: %v", err)
			}

			out := output.String()
			if !strings.Contains(out, "Results for 'alien' (42 total)") {
				t.Errorf("expected the API's total count in the header, got: %s", out)
			}
			if strings.Contains(out, "%!") {
				t.Errorf("output contains a printf verb mismatch: %s", out)
			}
		})

		t.Run("Requires A Session", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Service: &tu.MockService{}, Output: &bytes.Buffer{}})

			err := runCommand(t, runner, "browse", "search", "alien")
			if err == nil {
				t.Fatal("expected an error without a session")
			}
		})
	})

	t.Run("Detail Export", func(t *testing.T) {
		svc := &tu.MockService{
			DetailFunc: func(ctx context.Context, id string) (*models.MovieDetail, error) {
				return &models.MovieDetail{
					ID:    id,
					Title: "Alien",
					Year:  "1979",
					Plot:  "The crew of a commercial spacecraft encounter a deadly lifeform.",
				}, nil
			},
		}

		t.Run("Writes The Markdown Bundle And JSON Record", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := tu.MustGetwd(t)
			tu.MustChdir(t, tempDir)
			defer tu.MustChdir(t, originalDir)

			runner, output := newLoggedInRunner(t, svc)

			if err := runCommand(t, runner, "browse", "detail", "--id", "tt0078748", "--export", "bundle"); err != nil {
				t.Fatalf("detail export failed: %v", err)
			}

			tu.AssertDirExists(t, "bundle")
			tu.AssertFileExists(t, "bundle/README.md")
			tu.AssertFileExists(t, "bundle/detail.json")

			readme := tu.MustReadFile(t, "bundle/README.md")
			if !strings.Contains(readme, "# Alien (1979)") {
				t.Errorf("README missing the title heading, got: %s", readme)
			}

			record := tu.MustReadFile(t, "bundle/detail.json")
			if !strings.Contains(record, "tt0078748") {
				t.Errorf("detail JSON missing the ID, got: %s", record)
			}

			if !strings.Contains(output.String(), "✓ Exported Alien") {
				t.Errorf("expected an export acknowledgment, got: %s", output.String())
			}
		})

		t.Run("Directory Defaults To The IMDb ID", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := tu.MustGetwd(t)
			tu.MustChdir(t, tempDir)
			defer tu.MustChdir(t, originalDir)

			runner, _ := newLoggedInRunner(t, svc)

			if err := runCommand(t, runner, "browse", "detail", "--id", "tt0078748", "--export", ""); err != nil {
				t.Fatalf("detail export failed: %v", err)
			}

			tu.AssertFileExists(t, "tt0078748/README.md")
		})
	})
}
