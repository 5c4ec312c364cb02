package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/myflix/myflix/internal/shared"
	tu "github.com/myflix/myflix/internal/testing"
)

func TestOMDbService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv, err := NewOMDbService("http://example.com", "testkey", customClient)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.baseURL != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv, err := NewOMDbService("", "testkey", nil)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.baseURL != defaultBaseURL {
				t.Errorf("expected default baseURL %q, got %s", defaultBaseURL, srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("With Missing API Key", func(t *testing.T) {
			_, err := NewOMDbService("http://example.com", "", nil)

			if !errors.Is(err, shared.ErrMissingAPIKey) {
				t.Errorf("expected ErrMissingAPIKey, got %v", err)
			}
		})
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("Successful Search", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("s") != "batman" {
					t.Errorf("expected query 'batman', got %s", r.URL.Query().Get("s"))
				}
				if r.URL.Query().Get("apikey") != "testkey" {
					t.Errorf("expected apikey 'testkey', got %s", r.URL.Query().Get("apikey"))
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"Search": []map[string]string{
						{"imdbID": "tt0372784", "Title": "Batman Begins", "Year": "2005", "Type": "movie", "Poster": "http://img/poster.jpg"},
						{"imdbID": "tt0468569", "Title": "The Dark Knight", "Year": "2008", "Type": "movie", "Poster": "N/A"},
					},
					"totalResults": "2",
					"Response":     "True",
				})
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			result, err := srv.Search(context.Background(), "batman")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.Movies) != 2 {
				t.Fatalf("expected 2 movies, got %d", len(result.Movies))
			}
			if result.TotalResults != "2" {
				t.Errorf("expected totalResults '2', got %s", result.TotalResults)
			}
			if result.Movies[0].ID != "tt0372784" {
				t.Errorf("expected first ID 'tt0372784', got %s", result.Movies[0].ID)
			}
			if result.Movies[1].HasPoster() {
				t.Error("expected N/A poster to be treated as missing")
			}
		})

		t.Run("Failure Envelope Surfaces Message Verbatim", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"Response": "False",
					"Error":    "Movie not found!",
				})
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			_, err := srv.Search(context.Background(), "zzzzzz")

			if err == nil {
				t.Fatal("expected error for failure envelope")
			}

			var apiErr *shared.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *shared.APIError, got %T", err)
			}
			if apiErr.Message != "Movie not found!" {
				t.Errorf("expected message 'Movie not found!', got %q", apiErr.Message)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Error("expected APIError to match ErrAPIRequest class")
			}
		})

		t.Run("Failure Envelope Without Error String", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"Response": "False"})
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			_, err := srv.Search(context.Background(), "anything")

			var apiErr *shared.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *shared.APIError, got %T", err)
			}
			if apiErr.Message != "No movies found" {
				t.Errorf("expected fallback message, got %q", apiErr.Message)
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv, _ := NewOMDbService("http://example.com", "testkey", client)
			_, err := srv.Search(context.Background(), "batman")

			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Non-2xx Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			_, err := srv.Search(context.Background(), "batman")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "401") {
				t.Errorf("expected status in error, got %v", err)
			}
		})

		t.Run("Malformed JSON", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			_, err := srv.Search(context.Background(), "batman")

			if err == nil {
				t.Fatal("expected decode error")
			}
			if !strings.Contains(err.Error(), "failed to decode response") {
				t.Errorf("expected decode error, got %v", err)
			}
		})
	})

	t.Run("Detail", func(t *testing.T) {
		t.Run("Successful Detail", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("i") != "tt0372784" {
					t.Errorf("expected id 'tt0372784', got %s", r.URL.Query().Get("i"))
				}
				if r.URL.Query().Get("plot") != "full" {
					t.Errorf("expected plot 'full', got %s", r.URL.Query().Get("plot"))
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"imdbID":     "tt0372784",
					"Title":      "Batman Begins",
					"Year":       "2005",
					"Rated":      "PG-13",
					"Runtime":    "140 min",
					"Plot":       "A young Bruce Wayne travels the world.",
					"imdbRating": "8.2",
					"Response":   "True",
				})
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			detail, err := srv.Detail(context.Background(), "tt0372784")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if detail.Title != "Batman Begins" {
				t.Errorf("expected title 'Batman Begins', got %s", detail.Title)
			}
			if detail.Rating != "8.2" {
				t.Errorf("expected rating '8.2', got %s", detail.Rating)
			}
		})

		t.Run("Missing Fields Decode As Empty Strings", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"imdbID":   "tt0000001",
					"Title":    "Obscure Short",
					"Response": "True",
				})
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			detail, err := srv.Detail(context.Background(), "tt0000001")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if detail.Plot != "" {
				t.Errorf("expected empty plot, got %q", detail.Plot)
			}
			if detail.Director != "" {
				t.Errorf("expected empty director, got %q", detail.Director)
			}
		})

		t.Run("Unknown ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"Response": "False",
					"Error":    "Incorrect IMDb ID.",
				})
			}))
			defer server.Close()

			srv, _ := NewOMDbService(server.URL, "testkey", nil)
			_, err := srv.Detail(context.Background(), "ttbogus")

			var apiErr *shared.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *shared.APIError, got %T", err)
			}
			if apiErr.Message != "Incorrect IMDb ID." {
				t.Errorf("expected upstream message verbatim, got %q", apiErr.Message)
			}
		})

		t.Run("Empty ID", func(t *testing.T) {
			srv, _ := NewOMDbService("http://example.com", "testkey", nil)
			_, err := srv.Detail(context.Background(), "")

			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})
}

func TestTrailerURLs(t *testing.T) {
	t.Run("TrailerURL Encodes The Title", func(t *testing.T) {
		url := TrailerURL("Batman Begins")

		if !strings.Contains(url, "youtube.com/results") {
			t.Errorf("expected results URL, got %s", url)
		}
		if !strings.Contains(url, "Batman+Begins+official+trailer") {
			t.Errorf("expected encoded trailer query, got %s", url)
		}
	})

	t.Run("TrailerEmbedURL Uses Search Playlist", func(t *testing.T) {
		url := TrailerEmbedURL("Alien")

		if !strings.Contains(url, "listType=search") {
			t.Errorf("expected listType=search, got %s", url)
		}
		if !strings.Contains(url, "autoplay=1") {
			t.Errorf("expected autoplay, got %s", url)
		}
	})
}
