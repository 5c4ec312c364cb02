// OMDb API implementation of [Service]
//
// Response types based on https://www.omdbapi.com/#usage
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.omdbapi.com/"

// defaultBurst lets one dashboard initialization (four concurrent category
// searches) pass the limiter without queueing.
const defaultBurst = 4

// omdbEnvelope is the top-level search response wrapper. Response is the
// literal string "True" or "False"; Error is present iff Response is "False".
type omdbEnvelope struct {
	Search       []models.Movie `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
}

// omdbDetail is the flat, loosely-typed detail response. It shares the
// Response/Error failure signalling with the search envelope.
type omdbDetail struct {
	models.MovieDetail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// OMDbService implements the [Service] interface for the OMDb API.
//
// Authentication is a plain api-key query parameter. There is no retry and no
// client-side timeout: callers see the transport's failure as-is. A politeness
// rate limiter paces outgoing calls without reordering or dropping them.
type OMDbService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOMDbService creates a new OMDb client. An empty baseURL falls back to the
// public endpoint; a nil client falls back to [http.DefaultClient].
func NewOMDbService(baseURL, apiKey string, client *http.Client) (*OMDbService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: omdb api_key must be set", shared.ErrMissingAPIKey)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &OMDbService{
		baseURL:    strings.TrimSuffix(baseURL, "?"),
		apiKey:     apiKey,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(defaultBurst), defaultBurst),
	}, nil
}

func (s *OMDbService) Name() string {
	return "OMDb"
}

// doRequest performs a GET against the API with the given query parameters
// and decodes the JSON body into result.
func (s *OMDbService) doRequest(ctx context.Context, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	params.Set("apikey", s.apiKey)
	apiURL := s.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Search performs a title search with the query sent verbatim.
//
// A failure envelope (Response "False") returns *shared.APIError carrying the
// body's error string; "True" with no results is an empty SearchResult.
func (s *OMDbService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)

	var envelope omdbEnvelope
	if err := s.doRequest(ctx, params, &envelope); err != nil {
		return nil, err
	}

	if envelope.Response != "True" {
		message := envelope.Error
		if message == "" {
			message = "No movies found"
		}
		return nil, &shared.APIError{Message: message}
	}

	return &models.SearchResult{
		Movies:       envelope.Search,
		TotalResults: envelope.TotalResults,
	}, nil
}

// Detail retrieves the supplemental record for a catalog ID.
func (s *OMDbService) Detail(ctx context.Context, id string) (*models.MovieDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	var detail omdbDetail
	if err := s.doRequest(ctx, params, &detail); err != nil {
		return nil, err
	}

	if detail.Response != "True" {
		message := detail.Error
		if message == "" {
			message = "Movie not found"
		}
		return nil, &shared.APIError{Message: message}
	}

	return &detail.MovieDetail, nil
}
