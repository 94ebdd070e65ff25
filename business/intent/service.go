package intent

import (
	"context"
	"time"

	"shopSense/domain"
	"shopSense/pkg/logger"
	"shopSense/pkg/metrics"
)

const defaultExtractTimeout = 5 * time.Second

// Extractor parses a free-text query into a structured intent, typically
// backed by an LLM.
type Extractor interface {
	Extract(ctx context.Context, query string) (domain.ParsedIntent, error)
}

// Service resolves query intent with a primary extractor and a rule-based
// fallback. Extraction failure is never surfaced to the caller; the
// fallback result is used instead.
type Service struct {
	extractor Extractor
	fallback  *RuleBasedParser
	timeout   time.Duration
}

// NewService creates the intent service. extractor may be nil, in which
// case every query is parsed by rules alone.
func NewService(extractor Extractor, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultExtractTimeout
	}
	return &Service{
		extractor: extractor,
		fallback:  NewRuleBasedParser(),
		timeout:   timeout,
	}
}

// Understand returns the structured intent for a query. The rule-based
// parse always runs; when the extractor succeeds, its result wins but any
// field it left empty is backfilled from the rule-based parse.
func (s *Service) Understand(ctx context.Context, query string) domain.ParsedIntent {
	ruleBased := s.fallback.Parse(query)

	if s.extractor == nil {
		return ruleBased
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	extracted, err := s.extractor.Extract(extractCtx, query)
	if err != nil {
		logger.Warn("intent extraction failed, using rule-based parse", "error", err)
		metrics.IntentFallbackTotal.Inc()
		return ruleBased
	}

	extracted.Normalize()
	backfill(&extracted, ruleBased)
	return extracted
}

// backfill fills fields the extractor left empty with rule-based values.
// The extractor's explicit answers are never overridden.
func backfill(extracted *domain.ParsedIntent, ruleBased domain.ParsedIntent) {
	if extracted.MaxPrice == 0 {
		extracted.MaxPrice = ruleBased.MaxPrice
	}
	if extracted.MinPrice == 0 {
		extracted.MinPrice = ruleBased.MinPrice
	}
	if len(extracted.BrandPreferences) == 0 {
		extracted.BrandPreferences = ruleBased.BrandPreferences
	}
	if extracted.Category == "" {
		extracted.Category = ruleBased.Category
	}
	if len(extracted.Keywords) == 0 {
		extracted.Keywords = ruleBased.Keywords
	}
}
