package explain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"shopSense/domain"
)

// Context carries the request-level facts explanations are built from.
type Context struct {
	UserQuery       string
	Intent          domain.ParsedIntent
	TotalCandidates int
	Budget          float64
}

// Engine turns scored products into recommendations with human-readable
// rationale. It never alters scores or ordering.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Explain attaches retrieval reasons, ranking rationale, evidence, and
// alternative suggestions to each scored product, preserving order.
func (e *Engine) Explain(scored []domain.ScoredProduct, ctx Context) []domain.Recommendation {
	recommendations := make([]domain.Recommendation, 0, len(scored))

	for rank, sp := range scored {
		retrieval := retrievalReason(sp.Product, ctx)
		ranking := rankingReason(sp, rank)

		recommendations = append(recommendations, domain.Recommendation{
			Product:         sp.Product,
			FinalScore:      sp.FinalScore,
			Explanation:     fmt.Sprintf("%s. %s", retrieval, ranking),
			RetrievalReason: retrieval,
			RankingReason:   ranking,
			Evidence:        evidence(sp.Product),
			Alternatives:    alternatives(sp.Product, ctx),
			Confidence:      explanationConfidence(sp),
		})
	}

	return recommendations
}

func retrievalReason(product domain.Product, ctx Context) string {
	var reasons []string

	if ctx.Intent.Category != "" && strings.EqualFold(ctx.Intent.Category, product.Category) {
		reasons = append(reasons, fmt.Sprintf("Matches your %s search", ctx.Intent.Category))
	}

	if ctx.Budget > 0 && product.Price <= ctx.Budget {
		savings := ctx.Budget - product.Price
		reasons = append(reasons, fmt.Sprintf("Within your $%.0f budget (saves $%.0f)", ctx.Budget, savings))
	}

	if ctx.Intent.EcoFriendly && product.EcoCertified {
		reasons = append(reasons, "Eco-certified as requested")
	}

	for _, brand := range ctx.Intent.BrandPreferences {
		if strings.EqualFold(brand, product.Brand) {
			reasons = append(reasons, fmt.Sprintf("From preferred brand: %s", product.Brand))
			break
		}
	}

	if ctx.Intent.UseCase != "" {
		reasons = append(reasons, fmt.Sprintf("Suitable for %s", ctx.Intent.UseCase))
	}

	if len(reasons) == 0 {
		return "Semantically relevant to your search query"
	}
	return strings.Join(reasons, " • ")
}

var rankOrdinals = []string{"Top choice", "Second choice", "Third choice"}

func rankingReason(sp domain.ScoredProduct, rank int) string {
	if rank >= len(rankOrdinals) {
		rank = len(rankOrdinals) - 1
	}
	ordinal := rankOrdinals[rank]

	var strengths []string

	if sp.SemanticScore > 0.8 {
		strengths = append(strengths, "excellent relevance to your query")
	} else if sp.SemanticScore > 0.6 {
		strengths = append(strengths, "good relevance to your query")
	}

	if sp.ValueScore > 0.7 {
		strengths = append(strengths, "outstanding value for money")
	} else if sp.ValueScore > 0.5 {
		strengths = append(strengths, "solid value for money")
	}

	if sp.PreferenceScore > 0.7 {
		strengths = append(strengths, "strong match with your preferences")
	} else if sp.PreferenceScore > 0.5 {
		strengths = append(strengths, "aligns with your preferences")
	}

	if sp.ReviewScore > 0.7 {
		strengths = append(strengths, "highly rated by other buyers")
	} else if sp.ReviewScore > 0.5 {
		strengths = append(strengths, "well reviewed")
	}

	if len(strengths) == 0 {
		return fmt.Sprintf("%s: balanced across all ranking factors", ordinal)
	}
	return fmt.Sprintf("%s: %s", ordinal, strings.Join(strengths, ", "))
}

// evidence lists concrete product facts in a fixed order: price, rating,
// reviews, eco badge, stock, brand, store, then up to three specs.
func evidence(product domain.Product) []string {
	var facts []string

	if product.Price > 0 {
		facts = append(facts, fmt.Sprintf("Priced at $%.2f", product.Price))
	}
	if product.Rating > 0 {
		facts = append(facts, fmt.Sprintf("Rated %.1f out of 5 stars", product.Rating))
	}
	if product.ReviewsCount > 0 {
		facts = append(facts, fmt.Sprintf("Backed by %d customer reviews", product.ReviewsCount))
	}
	if product.EcoCertified {
		facts = append(facts, "Carries eco certification")
	}
	if product.InStock {
		facts = append(facts, "In stock now")
	} else {
		facts = append(facts, "Currently out of stock")
	}
	if product.Brand != "" {
		facts = append(facts, fmt.Sprintf("Made by %s", product.Brand))
	}
	if product.Store != "" {
		facts = append(facts, fmt.Sprintf("Sold by %s", product.Store))
	}

	if len(product.Specs) > 0 {
		keys := make([]string, 0, len(product.Specs))
		for key := range product.Specs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		if len(keys) > 3 {
			keys = keys[:3]
		}
		for _, key := range keys {
			facts = append(facts, fmt.Sprintf("%s: %v", key, product.Specs[key]))
		}
	}

	return facts
}

func alternatives(product domain.Product, ctx Context) []string {
	var suggestions []string

	if !product.InStock {
		suggestions = append(suggestions,
			"This item is out of stock; check back soon for a restock",
			"Consider an in-stock alternative from the same category",
		)
	}

	if ctx.Budget > 0 && product.Price > ctx.Budget*0.9 {
		suggestions = append(suggestions, "Close to your budget limit; watch for discounts or seasonal sales")
	}

	if ctx.Intent.EcoFriendly && !product.EcoCertified {
		suggestions = append(suggestions, "Not eco-certified; look for certified alternatives in this category")
	}

	if product.Brand == "" || strings.EqualFold(product.Brand, "generic") {
		suggestions = append(suggestions, "Unbranded item; a branded alternative may offer better warranty coverage")
	}

	return suggestions
}

// explanationConfidence is the mean of the four sub-scores discounted by
// their variance. Uniformly strong scores explain well; a ranking carried
// by a single outlier sub-score gets a hedged confidence.
func explanationConfidence(sp domain.ScoredProduct) float64 {
	scores := []float64{sp.SemanticScore, sp.ValueScore, sp.PreferenceScore, sp.ReviewScore}

	var mean float64
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	var variance float64
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))

	return math.Max(0, math.Min(1, mean*(1-variance)))
}
