package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"shopSense/domain"
	"shopSense/pkg/logger"
)

// ProductLister supplies the searchable catalog.
type ProductLister interface {
	Fetch(ctx context.Context) ([]domain.Product, error)
}

// MemoryEngine is an in-process hybrid search over the product catalog.
// Dense similarity comes from the embedder and is fused with a sparse
// keyword-overlap score. With no embedder configured, sparse overlap
// carries the full combined score.
type MemoryEngine struct {
	products ProductLister
	embedder Embedder

	cacheMu sync.RWMutex
	vectors map[string][]float64
}

func NewMemoryEngine(products ProductLister, embedder Embedder) *MemoryEngine {
	return &MemoryEngine{
		products: products,
		embedder: embedder,
		vectors:  make(map[string][]float64),
	}
}

func (e *MemoryEngine) Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.ProductCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit < 1 {
		limit = defaultLimit
	}

	catalog, err := e.products.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var queryVector []float64
	if e.embedder != nil {
		queryVector, err = e.embedder.Embed(ctx, query)
		if err != nil {
			logger.Warn("query embedding failed, using sparse-only retrieval", "error", err)
			queryVector = nil
		}
	}

	queryTokens := queryTerms(query)

	candidates := make([]domain.ProductCandidate, 0, limit)
	for _, product := range catalog {
		if !matchesFilters(product, filters) {
			continue
		}

		sparse := sparseScore(product, queryTokens)

		var dense float64
		haveDense := false
		if queryVector != nil {
			if vector, vErr := e.productVector(ctx, product); vErr == nil {
				dense = cosineSimilarity(queryVector, vector)
				haveDense = true
			}
		}

		combined := sparse
		if haveDense {
			combined = dense*denseWeight + sparse*sparseWeight
		}

		candidates = append(candidates, domain.ProductCandidate{
			Product:       product,
			SemanticScore: dense,
			SparseScore:   sparse,
			CombinedScore: combined,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CombinedScore > candidates[j].CombinedScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func matchesFilters(product domain.Product, filters domain.SearchFilters) bool {
	if filters.MaxPrice > 0 && product.Price > filters.MaxPrice {
		return false
	}
	if filters.MinPrice > 0 && product.Price < filters.MinPrice {
		return false
	}
	if filters.InStockOnly && !product.InStock {
		return false
	}
	for _, brand := range filters.ExcludedBrands {
		if strings.EqualFold(brand, product.Brand) {
			return false
		}
	}
	if len(filters.Categories) > 0 {
		matched := false
		for _, category := range filters.Categories {
			if strings.EqualFold(category, product.Category) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// sparseScore is the fraction of query terms found in the product's text
// fields, with name and brand matches counting more than description hits.
func sparseScore(product domain.Product, queryTokens []string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	name := strings.ToLower(product.Name)
	brand := strings.ToLower(product.Brand)
	category := strings.ToLower(product.Category)
	description := strings.ToLower(product.Description)

	var score float64
	for _, token := range queryTokens {
		switch {
		case strings.Contains(name, token) || strings.Contains(brand, token):
			score += 1.0
		case strings.Contains(category, token):
			score += 0.8
		case strings.Contains(description, token):
			score += 0.5
		}
	}

	return math.Min(score/float64(len(queryTokens)), 1.0)
}

func queryTerms(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return ' '
	}, query)

	var terms []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) >= 3 {
			terms = append(terms, word)
		}
	}
	return terms
}

func (e *MemoryEngine) productVector(ctx context.Context, product domain.Product) ([]float64, error) {
	e.cacheMu.RLock()
	vector, ok := e.vectors[product.ID]
	e.cacheMu.RUnlock()
	if ok {
		return vector, nil
	}

	text := fmt.Sprintf("%s %s %s %s", product.Name, product.Brand, product.Category, product.Description)
	vector, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cacheMu.Lock()
	e.vectors[product.ID] = vector
	e.cacheMu.Unlock()
	return vector, nil
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
