package intent

import (
	"shopSense/domain"
)

// Category synonyms expanded into search filters, so a catalog that labels
// laptops as "notebook" still matches a laptop intent.
var categorySynonyms = map[string][]string{
	"laptop":     {"laptop", "notebook", "ultrabook"},
	"smartphone": {"smartphone", "phone", "mobile"},
	"headphones": {"headphones", "earbuds", "headset"},
	"smartwatch": {"smartwatch", "wearable"},
	"camera":     {"camera", "dslr", "mirrorless"},
	"speaker":    {"speaker", "soundbar"},
	"drone":      {"drone", "quadcopter"},
	"pc":         {"pc", "desktop", "computer"},
}

// BuildSearchFilters converts a parsed intent into the retrieval filter
// predicate. Out-of-stock items are not excluded here; they are demoted
// during financial filtering instead.
func BuildSearchFilters(parsed domain.ParsedIntent) domain.SearchFilters {
	filters := domain.SearchFilters{
		MaxPrice:       parsed.MaxPrice,
		MinPrice:       parsed.MinPrice,
		Categories:     []string{},
		ExcludedBrands: parsed.ExcludedBrands,
	}

	if parsed.Category != "" {
		if synonyms, ok := categorySynonyms[parsed.Category]; ok {
			filters.Categories = append(filters.Categories, synonyms...)
		} else {
			filters.Categories = append(filters.Categories, parsed.Category)
		}
	}

	return filters
}
