package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopSense/domain"
)

type stubExtractor struct {
	intent domain.ParsedIntent
	err    error
	delay  time.Duration
}

func (s *stubExtractor) Extract(ctx context.Context, _ string) (domain.ParsedIntent, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return domain.ParsedIntent{}, ctx.Err()
		}
	}
	return s.intent, s.err
}

func TestParse_PricePatterns(t *testing.T) {
	parser := NewRuleBasedParser()

	cases := []struct {
		query    string
		minPrice float64
		maxPrice float64
	}{
		{"laptop between $500 and $800", 500, 800},
		{"laptop $500-$800", 500, 800},
		{"laptop 500 to 800 dollars", 500, 800},
		{"headphones under $150", 0, 150},
		{"phone below 600", 0, 600},
		{"camera less than $1200.50", 0, 1200.50},
		{"laptop with a budget of 900", 0, 900},
		{"speaker up to $80", 0, 80},
		{"smartwatch $250", 0, 250},
		{"just a laptop", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			parsed := parser.Parse(tc.query)
			assert.Equal(t, tc.minPrice, parsed.MinPrice)
			assert.Equal(t, tc.maxPrice, parsed.MaxPrice)
		})
	}
}

func TestParse_Categories(t *testing.T) {
	parser := NewRuleBasedParser()

	cases := map[string]string{
		"a good notebook for school":   "laptop",
		"new phone with a nice camera": "smartphone",
		"noise cancelling earbuds":     "headphones",
		"fitness tracker":              "smartwatch",
		"mirrorless under 2000":        "camera",
		"bluetooth soundbar":           "speaker",
		"quadcopter with gps":          "drone",
		"wireless something":           "headphones",
		"random gadget":                "",
	}

	for query, category := range cases {
		t.Run(query, func(t *testing.T) {
			assert.Equal(t, category, parser.Parse(query).Category)
		})
	}
}

func TestParse_BrandsFromProductLines(t *testing.T) {
	parser := NewRuleBasedParser()

	assert.Equal(t, []string{"Apple"}, parser.Parse("macbook for coding").BrandPreferences)
	assert.Equal(t, []string{"Samsung"}, parser.Parse("galaxy with good battery").BrandPreferences)
	assert.Equal(t, []string{"Lenovo"}, parser.Parse("a thinkpad for work").BrandPreferences)
	assert.Equal(t, []string{"Dell"}, parser.Parse("dell xps 13").BrandPreferences)
	assert.Empty(t, parser.Parse("any laptop").BrandPreferences)
}

func TestParse_EcoAndPriority(t *testing.T) {
	parser := NewRuleBasedParser()

	eco := parser.Parse("sustainable eco-friendly laptop")
	assert.True(t, eco.EcoFriendly)
	assert.Equal(t, domain.PriorityEco, eco.Priority)

	cheap := parser.Parse("cheap headphones")
	assert.False(t, cheap.EcoFriendly)
	assert.Equal(t, domain.PriorityPrice, cheap.Priority)

	premium := parser.Parse("premium camera for professionals")
	assert.Equal(t, domain.PriorityQuality, premium.Priority)

	// Substrings inside other words must not trigger keyword matches.
	neutral := parser.Parse("recommend a laptop")
	assert.False(t, neutral.EcoFriendly)
	assert.Equal(t, domain.PriorityBalanced, neutral.Priority)
}

func TestParse_PriceBeatsQualityWhenBothPresent(t *testing.T) {
	parsed := NewRuleBasedParser().Parse("best budget laptop")
	assert.Equal(t, domain.PriorityPrice, parsed.Priority)
}

func TestParse_UseCaseAndKeywords(t *testing.T) {
	parsed := NewRuleBasedParser().Parse("laptop for video editing under $1500")

	assert.Equal(t, "video editing", parsed.UseCase)
	assert.Contains(t, parsed.Keywords, "laptop")
	assert.Contains(t, parsed.Keywords, "video")
	assert.NotContains(t, parsed.Keywords, "for", "stop words are filtered")
	assert.NotContains(t, parsed.Keywords, "under")
}

func TestParse_EmptyQueryYieldsDefaults(t *testing.T) {
	parsed := NewRuleBasedParser().Parse("")

	assert.Equal(t, domain.PriorityBalanced, parsed.Priority)
	assert.NotNil(t, parsed.Keywords)
	assert.NotNil(t, parsed.BrandPreferences)
	assert.Empty(t, parsed.Category)
}

func TestUnderstand_NoExtractorUsesRules(t *testing.T) {
	service := NewService(nil, time.Second)

	parsed := service.Understand(context.Background(), "cheap laptop under $600")
	assert.Equal(t, "laptop", parsed.Category)
	assert.Equal(t, 600.0, parsed.MaxPrice)
	assert.Equal(t, domain.PriorityPrice, parsed.Priority)
}

func TestUnderstand_ExtractorFailureFallsBack(t *testing.T) {
	service := NewService(&stubExtractor{err: errors.New("api down")}, time.Second)

	parsed := service.Understand(context.Background(), "laptop under $600")
	assert.Equal(t, "laptop", parsed.Category)
	assert.Equal(t, 600.0, parsed.MaxPrice)
}

func TestUnderstand_ExtractorTimeoutFallsBack(t *testing.T) {
	service := NewService(&stubExtractor{delay: 500 * time.Millisecond}, 20*time.Millisecond)

	start := time.Now()
	parsed := service.Understand(context.Background(), "laptop under $600")
	assert.Less(t, time.Since(start), 400*time.Millisecond, "extraction must be cut off at the timeout")
	assert.Equal(t, "laptop", parsed.Category)
}

func TestUnderstand_BackfillsEmptyExtractorFields(t *testing.T) {
	llmIntent := domain.NewParsedIntent()
	llmIntent.UseCase = "gaming"
	service := NewService(&stubExtractor{intent: llmIntent}, time.Second)

	parsed := service.Understand(context.Background(), "dell laptop under $900")

	assert.Equal(t, "gaming", parsed.UseCase, "extractor answer is kept")
	assert.Equal(t, 900.0, parsed.MaxPrice, "missing budget backfilled from rules")
	assert.Equal(t, "laptop", parsed.Category)
	assert.Equal(t, []string{"Dell"}, parsed.BrandPreferences)
}

func TestUnderstand_ExtractorAnswersWin(t *testing.T) {
	llmIntent := domain.NewParsedIntent()
	llmIntent.MaxPrice = 1200
	llmIntent.Category = "camera"
	service := NewService(&stubExtractor{intent: llmIntent}, time.Second)

	parsed := service.Understand(context.Background(), "laptop under $600")
	assert.Equal(t, 1200.0, parsed.MaxPrice)
	assert.Equal(t, "camera", parsed.Category)
}

func TestBuildSearchFilters_SynonymExpansion(t *testing.T) {
	parsed := domain.NewParsedIntent()
	parsed.Category = "laptop"
	parsed.MaxPrice = 1000
	parsed.ExcludedBrands = []string{"Acme"}

	filters := BuildSearchFilters(parsed)
	assert.ElementsMatch(t, []string{"laptop", "notebook", "ultrabook"}, filters.Categories)
	assert.Equal(t, 1000.0, filters.MaxPrice)
	assert.Equal(t, []string{"Acme"}, filters.ExcludedBrands)

	unknown := domain.NewParsedIntent()
	unknown.Category = "gadget"
	require.Equal(t, []string{"gadget"}, BuildSearchFilters(unknown).Categories)

	none := BuildSearchFilters(domain.NewParsedIntent())
	assert.Empty(t, none.Categories)
	assert.NotNil(t, none.Categories)
}
