package intent

import (
	"regexp"
	"strconv"
	"strings"

	"shopSense/domain"
)

// RuleBasedParser extracts structured intent from a query using regular
// expressions and keyword tables. It is deterministic, dependency-free,
// and always succeeds; it backs the LLM extractor and stands alone when
// no extractor is configured.
type RuleBasedParser struct{}

func NewRuleBasedParser() *RuleBasedParser {
	return &RuleBasedParser{}
}

var (
	priceRangePattern   = regexp.MustCompile(`(?i)between\s+\$?(\d+(?:\.\d+)?)\s+and\s+\$?(\d+(?:\.\d+)?)`)
	priceDashPattern    = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)\s*(?:-|to)\s*\$?(\d+(?:\.\d+)?)`)
	priceCeilingPattern = regexp.MustCompile(`(?i)(?:under|below|less than|max|up to|budget(?:\s+of)?|within)\s+\$?(\d+(?:\.\d+)?)`)
	bareDollarPattern   = regexp.MustCompile(`\$(\d+(?:\.\d+)?)`)
)

// Brand keyword tables. Product-line names imply the brand even when the
// brand itself is never written.
var brandKeywords = map[string][]string{
	"Apple":   {"apple", "iphone", "macbook", "ipad", "airpods"},
	"Samsung": {"samsung", "galaxy"},
	"Lenovo":  {"lenovo", "thinkpad"},
	"HP":      {"hp "},
	"Asus":    {"asus", "zenbook", "rog"},
	"Dell":    {"dell", "xps"},
	"Sony":    {"sony", "playstation"},
	"Google":  {"google", "pixel"},
	"DJI":     {"dji", "mavic"},
	"Nikon":   {"nikon"},
	"Canon":   {"canon"},
}

var categoryKeywords = map[string][]string{
	"laptop":     {"laptop", "notebook", "ultrabook", "macbook", "chromebook"},
	"smartphone": {"smartphone", "phone", "iphone", "galaxy", "pixel"},
	"headphones": {"headphones", "headphone", "earbuds", "earphones", "headset"},
	"smartwatch": {"smartwatch", "smart watch", "fitness tracker"},
	"camera":     {"camera", "dslr", "mirrorless"},
	"speaker":    {"speaker", "soundbar"},
	"drone":      {"drone", "quadcopter"},
	"pc":         {"desktop", "gaming pc", "computer tower"},
}

// Category resolution order; earlier entries win ties.
var categoryOrder = []string{"laptop", "smartphone", "headphones", "smartwatch", "camera", "speaker", "drone", "pc"}

var ecoWords = []string{"eco", "eco-friendly", "sustainable", "green", "environmentally", "recycled", "energy-efficient"}

var priceWords = []string{"cheap", "cheapest", "budget", "affordable", "inexpensive"}

var qualityWords = []string{"best", "premium", "quality", "top", "high-end", "professional", "pro"}

var useCasePattern = regexp.MustCompile(`(?i)\bfor\s+([a-z][a-z\s]{2,30}?)(?:$|[,.]|\s+(?:under|below|between|with|and)\b)`)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "i": {}, "me": {}, "my": {}, "for": {},
	"with": {}, "and": {}, "or": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"is": {}, "it": {}, "need": {}, "want": {}, "looking": {}, "find": {},
	"show": {}, "get": {}, "buy": {}, "some": {}, "good": {}, "that": {},
	"under": {}, "below": {}, "between": {}, "please": {}, "recommend": {},
}

// Parse never fails; an empty query yields a default balanced intent.
func (p *RuleBasedParser) Parse(query string) domain.ParsedIntent {
	parsed := domain.NewParsedIntent()
	lowered := strings.ToLower(query)

	tokens := tokenize(lowered)

	parsed.MinPrice, parsed.MaxPrice = extractPrices(lowered)
	parsed.Category = extractCategory(lowered)
	parsed.BrandPreferences = extractBrands(lowered)
	parsed.EcoFriendly = hasAnyToken(tokens, ecoWords)
	parsed.UseCase = extractUseCase(query)
	parsed.Priority = extractPriority(tokens, parsed.EcoFriendly)
	parsed.Keywords = extractKeywords(lowered)

	return parsed
}

func extractPrices(query string) (minPrice, maxPrice float64) {
	if m := priceRangePattern.FindStringSubmatch(query); m != nil {
		return parseFloat(m[1]), parseFloat(m[2])
	}
	if m := priceDashPattern.FindStringSubmatch(query); m != nil {
		lo, hi := parseFloat(m[1]), parseFloat(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi
	}
	if m := priceCeilingPattern.FindStringSubmatch(query); m != nil {
		return 0, parseFloat(m[1])
	}
	if m := bareDollarPattern.FindStringSubmatch(query); m != nil {
		return 0, parseFloat(m[1])
	}
	return 0, 0
}

func extractCategory(query string) string {
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(query, keyword) {
				return category
			}
		}
	}
	// "wireless" with no other category signal almost always means audio.
	if strings.Contains(query, "wireless") {
		return "headphones"
	}
	return ""
}

func extractBrands(query string) []string {
	brands := []string{}
	for _, brand := range brandOrder {
		for _, keyword := range brandKeywords[brand] {
			if strings.Contains(query, keyword) {
				brands = append(brands, brand)
				break
			}
		}
	}
	return brands
}

// Deterministic brand iteration order.
var brandOrder = []string{"Apple", "Samsung", "Lenovo", "HP", "Asus", "Dell", "Sony", "Google", "DJI", "Nikon", "Canon"}

func extractUseCase(query string) string {
	m := useCasePattern.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	useCase := strings.TrimSpace(strings.ToLower(m[1]))
	if _, isStop := stopWords[useCase]; isStop || useCase == "" {
		return ""
	}
	return useCase
}

func extractPriority(tokens map[string]struct{}, eco bool) string {
	if hasAnyToken(tokens, priceWords) {
		return domain.PriorityPrice
	}
	if hasAnyToken(tokens, qualityWords) {
		return domain.PriorityQuality
	}
	if eco {
		return domain.PriorityEco
	}
	return domain.PriorityBalanced
}

func extractKeywords(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			return r
		}
		return ' '
	}, query)

	keywords := []string{}
	seen := map[string]struct{}{}
	for _, word := range strings.Fields(cleaned) {
		if len(word) < 3 {
			continue
		}
		if _, isStop := stopWords[word]; isStop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// tokenize splits a lowered query into word tokens, keeping hyphenated
// compounds intact so "eco-friendly" and "high-end" match as written.
func tokenize(query string) map[string]struct{} {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return ' '
	}, query)

	tokens := map[string]struct{}{}
	for _, word := range strings.Fields(cleaned) {
		tokens[word] = struct{}{}
		// Index hyphen parts too, so "eco-friendly" also matches "eco".
		if strings.Contains(word, "-") {
			for _, part := range strings.Split(word, "-") {
				if part != "" {
					tokens[part] = struct{}{}
				}
			}
		}
	}
	return tokens
}

func hasAnyToken(tokens map[string]struct{}, words []string) bool {
	for _, word := range words {
		if _, ok := tokens[word]; ok {
			return true
		}
	}
	return false
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
