package finfilter

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"shopSense/domain"
	"shopSense/pkg/logger"
)

// Default cap on candidates passed to ranking.
const maxFiltered = 10

// Value score penalty for candidates kept despite exceeding the budget.
const overBudgetPenalty = 0.3

// Result is the filter outcome: survivors with value scores, plus counts
// of what was removed and why.
type Result struct {
	Candidates    []domain.FilteredCandidate `json:"candidates"`
	FilteredCount int                        `json:"filtered_count"`
	FilterReasons map[string]int             `json:"filter_reasons"`
}

// Filter applies financial constraints to retrieval candidates and attaches
// a value-for-money score to each survivor.
//
// Brand exclusions and boycotts always drop. Budget violations drop only
// while at least one in-budget candidate remains; with none, the over-budget
// set is kept with penalized value scores so the user still gets results.
// Out-of-stock products stay in the pool with a halved value score.
type Filter struct {
	maxResults int
}

// NewFilter creates a filter passing at most maxResults survivors to
// ranking. Values below one fall back to the default cap.
func NewFilter(maxResults int) *Filter {
	if maxResults < 1 {
		maxResults = maxFiltered
	}
	return &Filter{maxResults: maxResults}
}

func (f *Filter) Apply(ctx context.Context, candidates []domain.ProductCandidate, intent domain.ParsedIntent, constraints domain.FinancialConstraints) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context error: %w", err)
	}

	result := Result{
		Candidates:    []domain.FilteredCandidate{},
		FilterReasons: map[string]int{},
	}

	blocked := blockedBrands(intent.ExcludedBrands, constraints.BoycottBrands)
	budget := constraints.MaxBudget
	if budget <= 0 {
		budget = intent.MaxPrice
	}

	var inBudget, overBudget []domain.FilteredCandidate

	for _, candidate := range candidates {
		product := candidate.Product

		if reason, ok := blocked[strings.ToLower(product.Brand)]; ok {
			result.FilterReasons[reason]++
			result.FilteredCount++
			continue
		}

		if intent.MinPrice > 0 && product.Price < intent.MinPrice {
			result.FilterReasons["under_min_price"]++
			result.FilteredCount++
			continue
		}

		filtered := domain.FilteredCandidate{
			ProductCandidate: candidate,
			ValueScore:       valueScore(product, intent, budget),
		}

		if !product.InStock {
			filtered.ValueScore /= 2
			result.FilterReasons["out_of_stock"]++
		}

		if budget > 0 && product.Price > budget {
			overBudget = append(overBudget, filtered)
			continue
		}
		inBudget = append(inBudget, filtered)
	}

	if len(inBudget) > 0 {
		result.FilterReasons["over_budget"] += len(overBudget)
		result.FilteredCount += len(overBudget)
		result.Candidates = inBudget
	} else if len(overBudget) > 0 {
		logger.Debug("no in-budget candidates, falling back to penalized over-budget set", "count", len(overBudget))
		for i := range overBudget {
			overBudget[i].ValueScore *= overBudgetPenalty
		}
		result.Candidates = overBudget
	}

	sort.SliceStable(result.Candidates, func(i, j int) bool {
		return rankKey(result.Candidates[i]) > rankKey(result.Candidates[j])
	})

	if len(result.Candidates) > f.maxResults {
		result.Candidates = result.Candidates[:f.maxResults]
	}

	return result, nil
}

func rankKey(c domain.FilteredCandidate) float64 {
	return c.CombinedScore*0.7 + c.ValueScore*0.3
}

func blockedBrands(excluded, boycotted []string) map[string]string {
	blocked := make(map[string]string, len(excluded)+len(boycotted))
	for _, brand := range excluded {
		if brand != "" {
			blocked[strings.ToLower(brand)] = "excluded_brand"
		}
	}
	for _, brand := range boycotted {
		if brand != "" {
			blocked[strings.ToLower(brand)] = "boycott_brand"
		}
	}
	return blocked
}

// valueScore is a 0..1 heuristic of value for money relative to the user's
// stated budget, rating, review volume, eco fit, and brand preferences.
func valueScore(product domain.Product, intent domain.ParsedIntent, budget float64) float64 {
	score := 0.5

	if budget > 0 && product.Price > 0 {
		ratio := product.Price / budget
		if intent.Priority == domain.PriorityPrice {
			score += (1 - ratio) * 0.3
		} else if ratio < 0.5 {
			// Deep-discount outliers in a non-price search read as
			// quality mismatches, not bargains.
			score -= 0.1
		} else {
			score += (1 - ratio) * 0.15
		}
	}

	if product.Rating > 0 {
		score += (product.Rating - 3) / 2 * 0.2
	}

	switch {
	case product.ReviewsCount > 1000:
		score += 0.2
	case product.ReviewsCount > 500:
		score += 0.15
	case product.ReviewsCount > 100:
		score += 0.1
	}

	if intent.EcoFriendly && product.EcoCertified {
		score += 0.15
	}

	for _, brand := range intent.BrandPreferences {
		if strings.EqualFold(brand, product.Brand) {
			score += 0.2
			break
		}
	}

	return math.Max(0, math.Min(1, score))
}
