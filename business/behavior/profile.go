package behavior

import (
	"sort"
	"time"

	"shopSense/domain"
)

// Minimum interactions before a profile is considered learnable.
const minProfileInteractions = 5

// Minimum interactions before a category slice is included in the profile.
const minCategoryInteractions = 2

// GetBehaviorProfile builds a read-only snapshot of the user's learned
// preferences. Returns nil for unknown users and for users below the
// cold-start threshold; callers treat nil as "rank on intent alone".
func (s *Store) GetBehaviorProfile(userID string) *domain.UserBehaviorProfile {
	s.mu.RLock()
	entry, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	prefs := &entry.prefs
	if prefs.interactionCount < minProfileInteractions {
		return nil
	}

	profile := &domain.UserBehaviorProfile{
		UserID:           userID,
		PriceSensitivity: (prefs.qualityPreference + 1) / 2,
		CategoryProfiles: make(map[string]domain.CategoryProfile),
		PreferredBrands:  topBrands(prefs.preferredBrands, 3, func(score float64) bool { return score > 0 }),
		AvoidedBrands:    topBrands(prefs.preferredBrands, 3, func(score float64) bool { return score < -0.2 }),
		EcoInterest:      prefs.ecoPreference,
		CategoryAffinity: topAffinities(prefs.preferredCategories, 5),
		InteractionCount: prefs.interactionCount,
	}
	if !prefs.lastUpdated.IsZero() {
		profile.LastUpdated = prefs.lastUpdated.Format(time.RFC3339)
	}

	for category, catPrefs := range prefs.categoryPrefs {
		if catPrefs.interactionCount < minCategoryInteractions {
			continue
		}

		avgPrice := 0.0
		if catPrefs.purchaseCount > 0 {
			avgPrice = catPrefs.totalSpent / float64(catPrefs.purchaseCount)
		}

		profile.CategoryProfiles[category] = domain.CategoryProfile{
			CategoryName:     category,
			PreferredBrands:  topBrands(catPrefs.brands, 3, func(score float64) bool { return score > 0 }),
			AvoidedBrands:    topBrands(catPrefs.brands, 3, func(score float64) bool { return score < -0.2 }),
			AvgPrice:         avgPrice,
			InteractionCount: catPrefs.interactionCount,
		}
	}

	return profile
}

type brandScore struct {
	name  string
	score float64
}

// topBrands returns up to limit brand names passing keep, strongest signal
// first. Avoided brands pass a negative-score predicate, so sorting is by
// absolute distance from zero.
func topBrands(scores map[string]float64, limit int, keep func(float64) bool) []string {
	ranked := make([]brandScore, 0, len(scores))
	for name, score := range scores {
		if keep(score) {
			ranked = append(ranked, brandScore{name: name, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		ai, aj := abs(ranked[i].score), abs(ranked[j].score)
		if ai != aj {
			return ai > aj
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	names := make([]string, len(ranked))
	for i, b := range ranked {
		names[i] = b.name
	}
	return names
}

func topAffinities(scores map[string]float64, limit int) map[string]float64 {
	ranked := make([]brandScore, 0, len(scores))
	for name, score := range scores {
		ranked = append(ranked, brandScore{name: name, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	top := make(map[string]float64, len(ranked))
	for _, b := range ranked {
		top[b.name] = b.score
	}
	return top
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
