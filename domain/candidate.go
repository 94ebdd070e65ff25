package domain

// ProductCandidate is a product plus its raw retrieval scores, as produced
// by hybrid search.
type ProductCandidate struct {
	Product       Product `json:"product"`
	SemanticScore float64 `json:"semantic_score"`
	SparseScore   float64 `json:"sparse_score"`
	CombinedScore float64 `json:"combined_score"`
}

// FilteredCandidate is a candidate that survived financial filtering, with
// its value-for-money score attached. ValueScore is always in [0, 1].
type FilteredCandidate struct {
	ProductCandidate
	ValueScore float64 `json:"value_score"`
}

// ScoredProduct carries the four ranking sub-scores and their weighted
// blend. All scores are in [0, 1]. Immutable once created.
type ScoredProduct struct {
	Product         Product `json:"product"`
	SemanticScore   float64 `json:"semantic_score"`
	ValueScore      float64 `json:"value_score"`
	PreferenceScore float64 `json:"preference_score"`
	ReviewScore     float64 `json:"review_score"`
	FinalScore      float64 `json:"final_score"`
}

// Recommendation is the final externally visible unit: a scored product
// plus its human-readable rationale.
type Recommendation struct {
	Product         Product  `json:"product"`
	FinalScore      float64  `json:"final_score"`
	Explanation     string   `json:"explanation"`
	RetrievalReason string   `json:"retrieval_reason"`
	RankingReason   string   `json:"ranking_reason"`
	Evidence        []string `json:"evidence"`
	Alternatives    []string `json:"alternatives"`
	Confidence      float64  `json:"confidence"`
}
