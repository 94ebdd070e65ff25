package behavior

import (
	"context"
	"math"
	"sync"
	"time"

	"shopSense/domain"
	"shopSense/pkg/logger"
)

// Temporal decay half-life in days: a 30-day-old event counts half.
const temporalHalfLife = 30.0

// Base weight per action type.
var actionWeights = map[domain.FeedbackAction]float64{
	domain.ActionView:      0.1,
	domain.ActionClick:     0.3,
	domain.ActionAddToCart: 0.6,
	domain.ActionPurchase:  1.0,
	domain.ActionSkip:      -0.1,
	domain.ActionReject:    -0.5,
}

// Layouts tried when parsing event timestamps. The last two cover naive
// ISO-8601 strings without a timezone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// EventRepository persists raw feedback events (append-only audit trail).
type EventRepository interface {
	SaveEvent(ctx context.Context, event domain.FeedbackEvent) error
}

type categoryPreference struct {
	brands           map[string]float64
	totalSpent       float64
	purchaseCount    int
	interactionCount int
}

type userPreferences struct {
	preferredCategories map[string]float64
	preferredBrands     map[string]float64
	categoryPrefs       map[string]*categoryPreference
	ecoPreference       float64 // -1 to 1
	qualityPreference   float64 // -1 (budget) to 1 (premium)
	interactionCount    int
	lastUpdated         time.Time
}

// userEntry carries its own lock so concurrent feedback from unrelated
// users never serializes on a shared mutex.
type userEntry struct {
	mu    sync.Mutex
	prefs userPreferences
}

type productStats struct {
	views     int
	clicks    int
	addToCart int
	purchases int
	skips     int
	rejects   int
}

func (s *productStats) ctr() float64 {
	if s.views == 0 {
		return 0
	}
	return float64(s.clicks) / float64(s.views)
}

func (s *productStats) conversionRate() float64 {
	if s.clicks == 0 {
		return 0
	}
	return float64(s.purchases) / float64(s.clicks)
}

// Store learns per-user preference aggregates from feedback events and
// exposes confidence-scored behavior profiles. It is the only shared
// mutable state in the pipeline; user aggregates are locked per user-id.
type Store struct {
	mu    sync.RWMutex
	users map[string]*userEntry

	statsMu      sync.Mutex
	products     map[string]*productStats
	actionCounts map[string]int
	totalEvents  int

	eventRepo EventRepository
}

// NewStore creates a behavior store. eventRepo may be nil; events are then
// kept only as in-memory aggregates.
func NewStore(eventRepo EventRepository) *Store {
	return &Store{
		users:        make(map[string]*userEntry),
		products:     make(map[string]*productStats),
		actionCounts: make(map[string]int),
		eventRepo:    eventRepo,
	}
}

// RecordFeedback appends a feedback event and folds it into the user's
// preference aggregates. All internal failures are converted to a false
// return; feedback loss is never fatal to the caller's primary request.
func (s *Store) RecordFeedback(ctx context.Context, event domain.FeedbackEvent) bool {
	if !event.Action.Valid() {
		logger.Warn("feedback rejected: unknown action", "action", string(event.Action))
		return false
	}
	if event.UserID == "" || event.ProductID == "" {
		logger.Warn("feedback rejected: missing user or product id")
		return false
	}

	if s.eventRepo != nil {
		if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
			logger.Error("failed to persist feedback event", "error", err)
			return false
		}
	}

	s.updateProductStats(event)
	s.updateUserPreferences(event)

	FeedbackEventsTotal.WithLabelValues(string(event.Action)).Inc()

	return true
}

func (s *Store) updateProductStats(event domain.FeedbackEvent) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	stats, ok := s.products[event.ProductID]
	if !ok {
		stats = &productStats{}
		s.products[event.ProductID] = stats
	}

	switch event.Action {
	case domain.ActionView:
		stats.views++
	case domain.ActionClick:
		stats.clicks++
	case domain.ActionAddToCart:
		stats.addToCart++
	case domain.ActionPurchase:
		stats.purchases++
	case domain.ActionSkip:
		stats.skips++
	case domain.ActionReject:
		stats.rejects++
	}

	s.actionCounts[string(event.Action)]++
	s.totalEvents++
}

func (s *Store) updateUserPreferences(event domain.FeedbackEvent) {
	entry := s.entryFor(event.UserID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	prefs := &entry.prefs
	weight := decayedWeight(event.Action, event.Timestamp, time.Now().UTC())

	fctx := event.Context

	// Global category accumulator plus the isolated per-category aggregate.
	if fctx.Category != "" {
		prefs.preferredCategories[fctx.Category] += weight

		catPrefs, ok := prefs.categoryPrefs[fctx.Category]
		if !ok {
			catPrefs = &categoryPreference{brands: make(map[string]float64)}
			prefs.categoryPrefs[fctx.Category] = catPrefs
		}
		catPrefs.interactionCount++

		if fctx.Brand != "" {
			catPrefs.brands[fctx.Brand] += weight
		}

		if event.Action == domain.ActionPurchase && fctx.Price > 0 {
			catPrefs.totalSpent += fctx.Price
			catPrefs.purchaseCount++
		}
	}

	if fctx.Brand != "" {
		prefs.preferredBrands[fctx.Brand] += weight
	}

	if fctx.EcoCertified {
		prefs.ecoPreference = clamp(prefs.ecoPreference+weight*0.1, -1, 1)
	}

	// Positive-weight interactions with items near the budget ceiling read
	// as a quality preference; well-below-budget picks read as budget focus.
	if fctx.Price > 0 {
		budget := fctx.UserBudget
		if budget <= 0 {
			budget = fctx.Price
		}
		priceRatio := fctx.Price / budget

		if weight > 0 {
			if priceRatio > 0.8 {
				prefs.qualityPreference += 0.1
			} else if priceRatio < 0.5 {
				prefs.qualityPreference -= 0.1
			}
		}
		prefs.qualityPreference = clamp(prefs.qualityPreference, -1, 1)
	}

	prefs.interactionCount++
	prefs.lastUpdated = time.Now().UTC()
}

func (s *Store) entryFor(userID string) *userEntry {
	s.mu.RLock()
	entry, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok = s.users[userID]; ok {
		return entry
	}
	entry = &userEntry{
		prefs: userPreferences{
			preferredCategories: make(map[string]float64),
			preferredBrands:     make(map[string]float64),
			categoryPrefs:       make(map[string]*categoryPreference),
		},
	}
	s.users[userID] = entry
	return entry
}

// decayedWeight applies exponential temporal decay to the action's base
// weight. An unparseable timestamp skips decay and uses the base weight.
func decayedWeight(action domain.FeedbackAction, timestamp string, now time.Time) float64 {
	base := actionWeights[action]

	ts, ok := parseTimestamp(timestamp)
	if !ok {
		logger.Debug("unparseable feedback timestamp, decay skipped", "timestamp", timestamp)
		return base
	}

	daysOld := now.Sub(ts).Hours() / 24
	if daysOld < 0 {
		daysOld = 0
	}

	return base * math.Exp(-daysOld*math.Ln2/temporalHalfLife)
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
