package domain

// Priority values recognized in a parsed intent.
const (
	PriorityPrice    = "price"
	PriorityQuality  = "quality"
	PriorityEco      = "eco"
	PriorityBalanced = "balanced"
)

// ParsedIntent is the structured extraction of a free-text shopping query.
// List fields are always non-nil; use NewParsedIntent or call Normalize
// after decoding from an external source.
type ParsedIntent struct {
	Category         string   `json:"category,omitempty"`
	MaxPrice         float64  `json:"max_price,omitempty"`
	MinPrice         float64  `json:"min_price,omitempty"`
	EcoFriendly      bool     `json:"eco_friendly"`
	Preferences      []string `json:"preferences"`
	UseCase          string   `json:"use_case,omitempty"`
	Priority         string   `json:"priority"`
	BrandPreferences []string `json:"brand_preferences"`
	ExcludedBrands   []string `json:"excluded_brands"`
	Keywords         []string `json:"keywords"`
}

func NewParsedIntent() ParsedIntent {
	return ParsedIntent{
		Priority:         PriorityBalanced,
		Preferences:      []string{},
		BrandPreferences: []string{},
		ExcludedBrands:   []string{},
		Keywords:         []string{},
	}
}

// Normalize fills nil list fields and defaults the priority, so intents
// decoded from JSON satisfy the never-null invariant.
func (i *ParsedIntent) Normalize() {
	if i.Preferences == nil {
		i.Preferences = []string{}
	}
	if i.BrandPreferences == nil {
		i.BrandPreferences = []string{}
	}
	if i.ExcludedBrands == nil {
		i.ExcludedBrands = []string{}
	}
	if i.Keywords == nil {
		i.Keywords = []string{}
	}
	if i.Priority == "" {
		i.Priority = PriorityBalanced
	}
}

// SearchFilters is the filter predicate handed to the search engine.
// Categories is already synonym-expanded (OR semantics).
type SearchFilters struct {
	MaxPrice       float64  `json:"max_price,omitempty"`
	MinPrice       float64  `json:"min_price,omitempty"`
	Categories     []string `json:"categories"`
	InStockOnly    bool     `json:"in_stock_only"`
	ExcludedBrands []string `json:"excluded_brands"`
}

// FinancialConstraints are additional user constraints applied on top of
// the parsed intent during filtering.
type FinancialConstraints struct {
	MaxBudget     float64  `json:"max_budget,omitempty"`
	ValuePriority float64  `json:"value_priority,omitempty"` // 0 = cheap, 1 = quality
	BoycottBrands []string `json:"boycott_brands,omitempty"`
}
