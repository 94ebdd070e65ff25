package search

import (
	"context"

	"shopSense/domain"
)

// Default retrieval depth.
const defaultLimit = 20

// Weights of the hybrid fusion. Dense similarity dominates; sparse keyword
// overlap keeps exact-term matches from drowning.
const (
	denseWeight  = 0.7
	sparseWeight = 0.3
)

// Embedder produces a dense vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Engine retrieves product candidates for a query under filter constraints.
type Engine interface {
	Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.ProductCandidate, error)
}
