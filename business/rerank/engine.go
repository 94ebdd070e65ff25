package rerank

import (
	"context"
	"fmt"
	"sort"

	"shopSense/domain"
	"shopSense/pkg/logger"
)

// Default number of recommendations returned.
const defaultTopK = 3

// ProfileProvider supplies learned behavior profiles. A nil profile means
// the user is in cold start and ranking falls back to intent alone.
type ProfileProvider interface {
	GetBehaviorProfile(userID string) *domain.UserBehaviorProfile
}

// Engine blends semantic, value, preference, and review sub-scores into a
// final ranking using priority-specific weights.
type Engine struct {
	profiles ProfileProvider
}

// NewEngine creates a ranking engine. profiles may be nil; every user then
// ranks as cold start.
func NewEngine(profiles ProfileProvider) *Engine {
	return &Engine{profiles: profiles}
}

// Rerank scores the filtered candidates and returns the top topK products
// ordered by final score. topK values below one fall back to the default.
func (e *Engine) Rerank(ctx context.Context, candidates []domain.FilteredCandidate, intent domain.ParsedIntent, userID string, topK int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	weights, err := WeightsForPriority(intent.Priority)
	if err != nil {
		return nil, err
	}

	if topK < 1 {
		topK = defaultTopK
	}

	var profile *domain.UserBehaviorProfile
	if e.profiles != nil && userID != "" {
		profile = e.profiles.GetBehaviorProfile(userID)
	}
	if profile != nil {
		logger.Debug("ranking with behavior profile",
			"user_id", userID,
			"confidence", profile.Confidence(),
			"interactions", profile.InteractionCount,
		)
	}

	scored := make([]domain.ScoredProduct, 0, len(candidates))
	for _, candidate := range candidates {
		product := candidate.Product

		sp := domain.ScoredProduct{
			Product:         product,
			SemanticScore:   normalizeSemantic(candidate.SemanticScore),
			ValueScore:      valueScore(product, intent),
			PreferenceScore: preferenceScore(product, intent, profile),
			ReviewScore:     reviewScore(product),
		}
		sp.FinalScore = clamp01(
			sp.SemanticScore*weights.Semantic +
				sp.ValueScore*weights.Value +
				sp.PreferenceScore*weights.Preference +
				sp.ReviewScore*weights.Review,
		)

		scored = append(scored, sp)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}
