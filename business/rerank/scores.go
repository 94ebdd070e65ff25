package rerank

import (
	"math"

	"shopSense/domain"
)

// Assumed price ceiling when the user stated no budget.
const defaultPriceCeiling = 10000.0

// normalizeSemantic maps raw similarity into [0, 1]. Negative scores are
// shifted into the lower half of the range rather than rescaling positives,
// so a weakly positive raw score stays ahead of a weakly negative one.
func normalizeSemantic(score float64) float64 {
	if score < 0 {
		return (score + 1) / 2
	}
	return math.Min(score, 1.0)
}

// valueScore recomputes value for money in ranking terms. Under a price
// priority it collapses to near-pure cheapness; otherwise it rewards the
// sweet spot between half and four-fifths of the budget, plus a
// rating-per-dollar bonus.
func valueScore(product domain.Product, intent domain.ParsedIntent) float64 {
	ceiling := intent.MaxPrice
	if ceiling <= 0 {
		ceiling = defaultPriceCeiling
	}

	if intent.Priority == domain.PriorityPrice {
		priceScore := clamp01(1 - product.Price/ceiling)
		return priceScore*0.9 + 0.1
	}

	score := 0.5
	if intent.MaxPrice > 0 {
		ratio := product.Price / intent.MaxPrice
		if ratio >= 0.5 && ratio <= 0.8 {
			score += 0.2
		} else {
			score += (1 - ratio) * 0.2
		}
	}

	if product.Price > 0 && product.Rating > 0 {
		ratingPerDollar := product.Rating / (product.Price / 100)
		score += math.Min(ratingPerDollar*0.1, 0.3)
	}

	return clamp01(score)
}

// reviewScore folds rating and review volume into one trust signal. A low
// rating backed by real volume is penalized harder than a low rating with
// no reviews behind it.
func reviewScore(product domain.Product) float64 {
	score := 0.3

	score += product.Rating / 5 * 0.5
	score += math.Min(math.Log10(float64(product.ReviewsCount)+1)/10, 0.3)

	if product.Rating < 3 && product.ReviewsCount > 10 {
		score -= 0.2
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
