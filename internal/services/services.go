// package services defines interface Service for interacting with HTTP movie
// metadata APIs
//
// OMDb is the only live implementation; tests substitute mocks.
package services

import (
	"context"

	"github.com/myflix/myflix/internal/models"
)

// Service defines the interface for movie metadata providers.
type Service interface {
	// Search performs a free-text title search. The query is sent verbatim
	// (URL encoding aside). A well-formed failure envelope from the API comes
	// back as *shared.APIError; transport failures wrap shared.ErrNetwork.
	Search(ctx context.Context, query string) (*models.SearchResult, error)

	// Detail retrieves the supplemental record for a catalog ID. Same error
	// contract as Search. Results are never cached.
	Detail(ctx context.Context, id string) (*models.MovieDetail, error)

	// Name returns the name of the provider (e.g., "OMDb")
	Name() string
}
