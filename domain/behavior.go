package domain

import "math"

// CategoryProfile is the per-category slice of a behavior profile. Keeping
// brand and price tendencies scoped per category prevents a preference
// learned for laptops from leaking into monitor recommendations.
type CategoryProfile struct {
	CategoryName     string   `json:"category_name"`
	PreferredBrands  []string `json:"preferred_brands"`
	AvoidedBrands    []string `json:"avoided_brands"`
	AvgPrice         float64  `json:"avg_price"`
	InteractionCount int      `json:"interaction_count"`
}

// UserBehaviorProfile is a derived, read-only snapshot of a user's learned
// tendencies. It is recomputed on demand and used only to nudge ranking,
// never to gate retrieval.
type UserBehaviorProfile struct {
	UserID string `json:"user_id"`

	// 0.0 = budget-focused, 1.0 = premium-focused
	PriceSensitivity float64 `json:"price_sensitivity"`

	CategoryProfiles map[string]CategoryProfile `json:"category_profiles"`

	// Global top-3 brand lists
	PreferredBrands []string `json:"preferred_brands"`
	AvoidedBrands   []string `json:"avoided_brands"`

	// -1.0 = no interest, 1.0 = strong preference
	EcoInterest float64 `json:"eco_interest"`

	// Top-5 category affinity scores
	CategoryAffinity map[string]float64 `json:"category_affinity"`

	InteractionCount int    `json:"interaction_count"`
	LastUpdated      string `json:"last_updated,omitempty"`
}

// Confidence grows smoothly with interaction count: 50% at 30 interactions,
// asymptotically approaching 1.
func (p *UserBehaviorProfile) Confidence() float64 {
	return 1 / (1 + math.Exp(-(float64(p.InteractionCount)-30)/15))
}

// CategoryConfidence is the per-category sigmoid: midpoint 15, steepness 8.
// Categories absent from the profile score zero.
func (p *UserBehaviorProfile) CategoryConfidence(category string) float64 {
	cp, ok := p.CategoryProfiles[category]
	if !ok {
		return 0
	}
	return 1 / (1 + math.Exp(-(float64(cp.InteractionCount)-15)/8))
}

// BehaviorAnalytics is the system-wide feedback summary.
type BehaviorAnalytics struct {
	TotalFeedbackEvents   int                `json:"total_feedback_events"`
	UniqueUsers           int                `json:"unique_users"`
	TrackedProducts       int                `json:"tracked_products"`
	AverageCTR            float64            `json:"average_ctr"`
	AverageConversionRate float64            `json:"average_conversion_rate"`
	ActionBreakdown       map[string]int     `json:"action_breakdown"`
	TopProducts           []TopProductMetric `json:"top_products"`
}

// TopProductMetric is one row of the top-products-by-purchases list.
type TopProductMetric struct {
	ProductID string  `json:"product_id"`
	Purchases int     `json:"purchases"`
	CTR       float64 `json:"ctr"`
}
