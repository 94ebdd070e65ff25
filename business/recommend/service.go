package recommend

import (
	"context"
	"fmt"
	"time"

	"shopSense/business/behavior"
	"shopSense/business/explain"
	"shopSense/business/finfilter"
	"shopSense/business/intent"
	"shopSense/business/rerank"
	"shopSense/business/respond"
	"shopSense/business/search"
	"shopSense/domain"
	"shopSense/pkg/logger"
	"shopSense/pkg/metrics"
)

// ProfileCache is an optional read-through cache for behavior profiles.
type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserBehaviorProfile, error)
	SetProfile(ctx context.Context, profile *domain.UserBehaviorProfile) error
	DeleteProfile(ctx context.Context, userID string) error
}

// Limits bounds the pipeline stages. Zero values fall back to each
// stage's own default.
type Limits struct {
	SearchDepth int // candidates fetched from retrieval
	FilterCap   int // survivors passed to ranking
	DefaultTopK int // results returned when the request does not ask for a count
}

// Request is one recommendation query.
type Request struct {
	UserID      string
	Query       string
	Constraints domain.FinancialConstraints
	TopK        int
}

// Service runs the full pipeline: intent, retrieval, financial filtering,
// ranking, explanation, and display assembly.
type Service struct {
	intents   *intent.Service
	searcher  search.Engine
	filter    *finfilter.Filter
	ranker    *rerank.Engine
	behavior  *behavior.Store
	explainer *explain.Engine
	formatter *respond.Formatter
	cache     ProfileCache

	searchDepth int
	defaultTopK int
}

// NewService wires the pipeline. cache may be nil.
func NewService(
	intents *intent.Service,
	searcher search.Engine,
	behaviorStore *behavior.Store,
	formatter *respond.Formatter,
	cache ProfileCache,
	limits Limits,
) *Service {
	if limits.SearchDepth < 1 {
		limits.SearchDepth = 20
	}
	s := &Service{
		intents:     intents,
		searcher:    searcher,
		filter:      finfilter.NewFilter(limits.FilterCap),
		behavior:    behaviorStore,
		explainer:   explain.NewEngine(),
		formatter:   formatter,
		cache:       cache,
		searchDepth: limits.SearchDepth,
		defaultTopK: limits.DefaultTopK,
	}
	s.ranker = rerank.NewEngine(&profileSource{store: behaviorStore, cache: cache})
	return s
}

// Recommend answers a free-text shopping query with explained, ranked
// recommendations. An empty candidate pool is not an error; the response
// just carries no recommendations.
func (s *Service) Recommend(ctx context.Context, req Request) (respond.UIResponse, error) {
	if err := ctx.Err(); err != nil {
		return respond.UIResponse{}, fmt.Errorf("context error: %w", err)
	}
	start := time.Now()

	parsed := s.intents.Understand(ctx, req.Query)
	filters := intent.BuildSearchFilters(parsed)

	candidates, err := s.searcher.Search(ctx, req.Query, filters, s.searchDepth)
	if err != nil {
		return respond.UIResponse{}, fmt.Errorf("retrieval failed: %w", err)
	}

	filtered, err := s.filter.Apply(ctx, candidates, parsed, req.Constraints)
	if err != nil {
		return respond.UIResponse{}, err
	}

	topK := req.TopK
	if topK < 1 {
		topK = s.defaultTopK
	}

	scored, err := s.ranker.Rerank(ctx, filtered.Candidates, parsed, req.UserID, topK)
	if err != nil {
		return respond.UIResponse{}, err
	}

	budget := req.Constraints.MaxBudget
	if budget <= 0 {
		budget = parsed.MaxPrice
	}
	recommendations := s.explainer.Explain(scored, explain.Context{
		UserQuery:       req.Query,
		Intent:          parsed,
		TotalCandidates: len(candidates),
		Budget:          budget,
	})

	elapsed := time.Since(start)
	response := s.formatter.Format(recommendations, parsed, len(candidates), elapsed.Milliseconds())

	metrics.RecommendDuration.Observe(elapsed.Seconds())
	metrics.RecommendTotal.Inc()

	logger.Info("recommendation served",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", req.UserID,
		"candidates", len(candidates),
		"filtered_out", filtered.FilteredCount,
		"results", len(response.Recommendations),
		"duration_ms", elapsed.Milliseconds(),
	)

	return response, nil
}

// RecordFeedback forwards a feedback event to the behavior store and
// invalidates the user's cached profile on success.
func (s *Service) RecordFeedback(ctx context.Context, event domain.FeedbackEvent) bool {
	ok := s.behavior.RecordFeedback(ctx, event)
	if ok && s.cache != nil {
		if err := s.cache.DeleteProfile(ctx, event.UserID); err != nil {
			logger.Warn("failed to invalidate cached profile", "user_id", event.UserID, "error", err)
		}
	}
	return ok
}

// Analytics exposes the aggregate feedback summary.
func (s *Service) Analytics() domain.BehaviorAnalytics {
	return s.behavior.Analytics()
}

// Profile returns the learned behavior profile, or nil in cold start.
func (s *Service) Profile(userID string) *domain.UserBehaviorProfile {
	return s.behavior.GetBehaviorProfile(userID)
}

const profileCacheTimeout = 200 * time.Millisecond

// profileSource adapts the behavior store plus optional cache into the
// ranking engine's profile lookup. Cache misses and cache errors both fall
// through to the store.
type profileSource struct {
	store *behavior.Store
	cache ProfileCache
}

func (p *profileSource) GetBehaviorProfile(userID string) *domain.UserBehaviorProfile {
	if p.store == nil {
		return nil
	}

	if p.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), profileCacheTimeout)
		defer cancel()

		if profile, err := p.cache.GetProfile(ctx, userID); err == nil && profile != nil {
			return profile
		}
	}

	profile := p.store.GetBehaviorProfile(userID)

	if profile != nil && p.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), profileCacheTimeout)
		defer cancel()

		if err := p.cache.SetProfile(ctx, profile); err != nil {
			logger.Debug("failed to cache behavior profile", "user_id", userID, "error", err)
		}
	}
	return profile
}
