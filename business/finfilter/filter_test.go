package finfilter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopSense/domain"
)

func candidate(id, brand string, price float64, combined float64) domain.ProductCandidate {
	return domain.ProductCandidate{
		Product: domain.Product{
			ID:      id,
			Name:    id,
			Brand:   brand,
			Price:   price,
			Rating:  4.0,
			InStock: true,
		},
		SemanticScore: combined,
		CombinedScore: combined,
	}
}

func TestApply_ExcludedBrandsAlwaysDrop(t *testing.T) {
	filter := NewFilter(0)
	intent := domain.NewParsedIntent()
	intent.ExcludedBrands = []string{"Samsung"}

	candidates := []domain.ProductCandidate{
		candidate("p1", "samsung", 500, 0.9),
		candidate("p2", "Sony", 500, 0.8),
	}

	result, err := filter.Apply(context.Background(), candidates, intent, domain.FinancialConstraints{})
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "p2", result.Candidates[0].Product.ID)
	assert.Equal(t, 1, result.FilteredCount)
	assert.Equal(t, 1, result.FilterReasons["excluded_brand"])
}

func TestApply_BoycottBrandsDropCaseInsensitively(t *testing.T) {
	filter := NewFilter(0)
	constraints := domain.FinancialConstraints{BoycottBrands: []string{"ACME"}}

	candidates := []domain.ProductCandidate{candidate("p1", "Acme", 100, 0.9)}

	result, err := filter.Apply(context.Background(), candidates, domain.NewParsedIntent(), constraints)
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 1, result.FilterReasons["boycott_brand"])
}

func TestApply_BudgetDropsWhileInBudgetRemains(t *testing.T) {
	filter := NewFilter(0)
	intent := domain.NewParsedIntent()
	intent.MaxPrice = 800

	candidates := []domain.ProductCandidate{
		candidate("cheap", "A", 600, 0.7),
		candidate("pricey", "B", 1200, 0.95),
	}

	result, err := filter.Apply(context.Background(), candidates, intent, domain.FinancialConstraints{})
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "cheap", result.Candidates[0].Product.ID)
	assert.Equal(t, 1, result.FilterReasons["over_budget"])
}

func TestApply_OverBudgetFallbackWhenNothingFits(t *testing.T) {
	filter := NewFilter(0)
	intent := domain.NewParsedIntent()
	intent.MaxPrice = 100

	candidates := []domain.ProductCandidate{
		candidate("p1", "A", 500, 0.9),
		candidate("p2", "B", 600, 0.8),
	}

	result, err := filter.Apply(context.Background(), candidates, intent, domain.FinancialConstraints{})
	require.NoError(t, err)

	require.Len(t, result.Candidates, 2, "empty in-budget set keeps over-budget candidates")
	assert.Zero(t, result.FilterReasons["over_budget"])
	for _, c := range result.Candidates {
		assert.Less(t, c.ValueScore, 0.3, "fallback candidates carry a penalized value score")
	}
}

func TestApply_ConstraintBudgetOverridesIntentBudget(t *testing.T) {
	filter := NewFilter(0)
	intent := domain.NewParsedIntent()
	intent.MaxPrice = 2000

	candidates := []domain.ProductCandidate{
		candidate("p1", "A", 900, 0.9),
		candidate("p2", "B", 400, 0.8),
	}

	result, err := filter.Apply(context.Background(), candidates, intent, domain.FinancialConstraints{MaxBudget: 500})
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "p2", result.Candidates[0].Product.ID)
}

func TestApply_MinPriceDrops(t *testing.T) {
	filter := NewFilter(0)
	intent := domain.NewParsedIntent()
	intent.MinPrice = 200

	candidates := []domain.ProductCandidate{
		candidate("toy", "A", 50, 0.9),
		candidate("real", "B", 400, 0.8),
	}

	result, err := filter.Apply(context.Background(), candidates, intent, domain.FinancialConstraints{})
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "real", result.Candidates[0].Product.ID)
	assert.Equal(t, 1, result.FilterReasons["under_min_price"])
}

func TestApply_OutOfStockHalvesValueButKeeps(t *testing.T) {
	filter := NewFilter(0)

	inStock := candidate("p1", "A", 500, 0.8)
	outOfStock := candidate("p2", "A", 500, 0.8)
	outOfStock.Product.InStock = false

	result, err := filter.Apply(context.Background(), []domain.ProductCandidate{inStock, outOfStock}, domain.NewParsedIntent(), domain.FinancialConstraints{})
	require.NoError(t, err)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, 1, result.FilterReasons["out_of_stock"])
	assert.Zero(t, result.FilteredCount)

	byID := map[string]float64{}
	for _, c := range result.Candidates {
		byID[c.Product.ID] = c.ValueScore
	}
	assert.InDelta(t, byID["p1"]/2, byID["p2"], 1e-9)
}

func TestValueScore_ReviewTiersAreNotCumulative(t *testing.T) {
	intent := domain.NewParsedIntent()

	base := domain.Product{Price: 500, Rating: 3}
	top := base
	top.ReviewsCount = 1500
	mid := base
	mid.ReviewsCount = 600
	low := base
	low.ReviewsCount = 150

	baseScore := valueScore(base, intent, 0)
	assert.InDelta(t, baseScore+0.2, valueScore(top, intent, 0), 1e-9)
	assert.InDelta(t, baseScore+0.15, valueScore(mid, intent, 0), 1e-9)
	assert.InDelta(t, baseScore+0.1, valueScore(low, intent, 0), 1e-9)
}

func TestValueScore_PricePriorityRewardsCheapness(t *testing.T) {
	intent := domain.NewParsedIntent()
	intent.Priority = domain.PriorityPrice

	cheap := domain.Product{Price: 200, Rating: 4}
	pricey := domain.Product{Price: 900, Rating: 4}

	assert.Greater(t, valueScore(cheap, intent, 1000), valueScore(pricey, intent, 1000))
}

func TestValueScore_BoundsHold(t *testing.T) {
	intent := domain.NewParsedIntent()
	intent.EcoFriendly = true
	intent.BrandPreferences = []string{"Apple"}

	best := domain.Product{Price: 100, Rating: 5, ReviewsCount: 5000, EcoCertified: true, Brand: "Apple"}
	worst := domain.Product{Price: 990, Rating: 1, ReviewsCount: 0}

	intent.Priority = domain.PriorityPrice
	assert.LessOrEqual(t, valueScore(best, intent, 1000), 1.0)
	assert.GreaterOrEqual(t, valueScore(worst, intent, 1000), 0.0)
}

func TestApply_CapsAtTen(t *testing.T) {
	filter := NewFilter(0)

	var candidates []domain.ProductCandidate
	for i := 0; i < 25; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("p%02d", i), "A", 100, float64(i)/25))
	}

	result, err := filter.Apply(context.Background(), candidates, domain.NewParsedIntent(), domain.FinancialConstraints{})
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 10)
	assert.Equal(t, "p24", result.Candidates[0].Product.ID, "survivors are the best-ranked candidates")
}

func TestApply_ConfiguredCapOverridesDefault(t *testing.T) {
	filter := NewFilter(4)

	var candidates []domain.ProductCandidate
	for i := 0; i < 25; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("p%02d", i), "A", 100, float64(i)/25))
	}

	result, err := filter.Apply(context.Background(), candidates, domain.NewParsedIntent(), domain.FinancialConstraints{})
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 4)
}

func TestApply_CancelledContext(t *testing.T) {
	filter := NewFilter(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := filter.Apply(ctx, nil, domain.NewParsedIntent(), domain.FinancialConstraints{})
	assert.Error(t, err)
}
