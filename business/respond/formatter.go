package respond

import (
	"fmt"
	"math"
	"strings"

	"shopSense/domain"
)

// UIProduct is the display-ready product projection.
type UIProduct struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	FormattedPrice string            `json:"formatted_price"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand"`
	Store          string            `json:"store"`
	Rating         float64           `json:"rating"`
	Stars          string            `json:"stars"`
	ReviewsLabel   string            `json:"reviews_label"`
	EcoCertified   bool              `json:"eco_certified"`
	InStock        bool              `json:"in_stock"`
	ImageURL       string            `json:"image_url,omitempty"`
	Actions        map[string]string `json:"actions"`
}

// UIRecommendation pairs a display product with its ranking rationale.
// FinalScore is the exact ranking output, never re-rounded.
type UIRecommendation struct {
	Rank            int      `json:"rank"`
	Product         UIProduct `json:"product"`
	FinalScore      float64  `json:"final_score"`
	MatchLabel      string   `json:"match_label"`
	Explanation     string   `json:"explanation"`
	RetrievalReason string   `json:"retrieval_reason"`
	RankingReason   string   `json:"ranking_reason"`
	Evidence        []string `json:"evidence"`
	Alternatives    []string `json:"alternatives,omitempty"`
	Confidence      float64  `json:"confidence"`
	ConfidenceLabel string   `json:"confidence_label"`
}

// UIBudgetInsight summarizes how the top recommendation sits against the
// stated budget.
type UIBudgetInsight struct {
	Budget         float64 `json:"budget"`
	TopPrice       float64 `json:"top_price"`
	SavingsPercent float64 `json:"savings_percent"`
	Verdict        string  `json:"verdict"`
}

// UIResponse is the full display payload for one recommendation request.
type UIResponse struct {
	Recommendations  []UIRecommendation `json:"recommendations"`
	TotalCandidates  int                `json:"total_candidates"`
	ResultCount      int                `json:"result_count"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	BudgetInsight    *UIBudgetInsight   `json:"budget_insight,omitempty"`
}

// Formatter assembles display payloads. baseURL prefixes all action links.
type Formatter struct {
	baseURL string
}

func NewFormatter(baseURL string) *Formatter {
	return &Formatter{baseURL: strings.TrimRight(baseURL, "/")}
}

// Format converts recommendations into the display payload. Scores pass
// through unchanged; only labels and formatting are added.
func (f *Formatter) Format(recs []domain.Recommendation, intent domain.ParsedIntent, totalCandidates int, processingMs int64) UIResponse {
	response := UIResponse{
		Recommendations:  make([]UIRecommendation, 0, len(recs)),
		TotalCandidates:  totalCandidates,
		ResultCount:      len(recs),
		ProcessingTimeMs: processingMs,
	}

	for i, rec := range recs {
		response.Recommendations = append(response.Recommendations, UIRecommendation{
			Rank:            i + 1,
			Product:         f.uiProduct(rec.Product),
			FinalScore:      rec.FinalScore,
			MatchLabel:      matchLabel(rec.FinalScore),
			Explanation:     rec.Explanation,
			RetrievalReason: rec.RetrievalReason,
			RankingReason:   rec.RankingReason,
			Evidence:        rec.Evidence,
			Alternatives:    rec.Alternatives,
			Confidence:      rec.Confidence,
			ConfidenceLabel: confidenceLabel(rec.Confidence),
		})
	}

	if intent.MaxPrice > 0 && len(recs) > 0 {
		response.BudgetInsight = budgetInsight(intent.MaxPrice, recs[0].Product.Price)
	}

	return response
}

func (f *Formatter) uiProduct(product domain.Product) UIProduct {
	return UIProduct{
		ID:             product.ID,
		Name:           product.Name,
		Price:          product.Price,
		FormattedPrice: formatPrice(product.Price),
		Category:       product.Category,
		Brand:          product.Brand,
		Store:          product.Store,
		Rating:         product.Rating,
		Stars:          starString(product.Rating),
		ReviewsLabel:   reviewsLabel(product.ReviewsCount),
		EcoCertified:   product.EcoCertified,
		InStock:        product.InStock,
		ImageURL:       product.ImageURL,
		Actions: map[string]string{
			"view":    fmt.Sprintf("%s/products/%s", f.baseURL, product.ID),
			"compare": fmt.Sprintf("%s/compare?add=%s", f.baseURL, product.ID),
			"buy":     fmt.Sprintf("%s/checkout?product=%s", f.baseURL, product.ID),
			"save":    fmt.Sprintf("%s/wishlist?add=%s", f.baseURL, product.ID),
		},
	}
}

func matchLabel(score float64) string {
	switch {
	case score >= 0.9:
		return "Perfect Match"
	case score >= 0.8:
		return "Excellent Match"
	case score >= 0.7:
		return "Great Match"
	case score >= 0.6:
		return "Good Match"
	case score >= 0.5:
		return "Fair Match"
	default:
		return "Possible Match"
	}
}

func confidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "High"
	case confidence >= 0.6:
		return "Medium"
	default:
		return "Low"
	}
}

func budgetInsight(budget, topPrice float64) *UIBudgetInsight {
	savingsPct := (budget - topPrice) / budget * 100

	var verdict string
	switch {
	case savingsPct > 20:
		verdict = "Excellent Value"
	case savingsPct > 10:
		verdict = "Good Value"
	case savingsPct > 0:
		verdict = "Fair Value"
	case savingsPct > -10:
		verdict = "At Budget"
	default:
		verdict = "Over Budget"
	}

	return &UIBudgetInsight{
		Budget:         budget,
		TopPrice:       topPrice,
		SavingsPercent: savingsPct,
		Verdict:        verdict,
	}
}

// starString renders a rating as stars, rounded to the nearest half.
func starString(rating float64) string {
	rounded := math.Round(rating*2) / 2
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 5 {
		rounded = 5
	}

	full := int(rounded)
	half := rounded-float64(full) >= 0.5

	var sb strings.Builder
	for i := 0; i < full; i++ {
		sb.WriteRune('★')
	}
	if half {
		sb.WriteRune('½')
	}
	empty := 5 - full
	if half {
		empty--
	}
	for i := 0; i < empty; i++ {
		sb.WriteRune('☆')
	}
	return sb.String()
}

func reviewsLabel(count int) string {
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%s reviews", trimTrailingZero(float64(count)/1_000_000)+"M")
	case count >= 1_000:
		return fmt.Sprintf("%s reviews", trimTrailingZero(float64(count)/1_000)+"K")
	case count == 1:
		return "1 review"
	default:
		return fmt.Sprintf("%d reviews", count)
	}
}

func trimTrailingZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

// formatPrice renders a dollar amount with thousands separators.
func formatPrice(price float64) string {
	whole := int64(price)
	cents := int64(math.Round((price - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := fmt.Sprintf("%d", whole)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return fmt.Sprintf("$%s.%02d", sb.String(), cents)
}
