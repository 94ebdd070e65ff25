package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopSense/business/behavior"
	"shopSense/business/intent"
	"shopSense/business/respond"
	"shopSense/business/search"
	"shopSense/domain"
)

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (s *stubCatalog) Fetch(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

type memCache struct {
	profiles map[string]*domain.UserBehaviorProfile
	gets     int
	deletes  int
}

func newMemCache() *memCache {
	return &memCache{profiles: map[string]*domain.UserBehaviorProfile{}}
}

func (c *memCache) GetProfile(_ context.Context, userID string) (*domain.UserBehaviorProfile, error) {
	c.gets++
	return c.profiles[userID], nil
}

func (c *memCache) SetProfile(_ context.Context, profile *domain.UserBehaviorProfile) error {
	c.profiles[profile.UserID] = profile
	return nil
}

func (c *memCache) DeleteProfile(_ context.Context, userID string) error {
	c.deletes++
	delete(c.profiles, userID)
	return nil
}

func catalog() []domain.Product {
	return []domain.Product{
		{ID: "dell-xps", Name: "Dell XPS 13 Laptop", Category: "laptop", Brand: "Dell", Price: 899, Rating: 4.6, ReviewsCount: 1800, InStock: true, Description: "Compact laptop for work and travel"},
		{ID: "hp-envy", Name: "HP Envy Laptop", Category: "laptop", Brand: "HP", Price: 749, Rating: 4.2, ReviewsCount: 640, InStock: true, Description: "Everyday laptop"},
		{ID: "eco-book", Name: "GreenBook Eco Laptop", Category: "laptop", Brand: "Framework", Price: 999, Rating: 4.4, ReviewsCount: 310, EcoCertified: true, InStock: true, Description: "Repairable sustainable laptop"},
		{ID: "jbl-go", Name: "JBL Go Speaker", Category: "speaker", Brand: "JBL", Price: 49, Rating: 4.3, ReviewsCount: 5200, InStock: true, Description: "Portable bluetooth speaker"},
	}
}

func newTestService(products []domain.Product, cache ProfileCache) (*Service, *behavior.Store) {
	store := behavior.NewStore(nil)
	engine := search.NewMemoryEngine(&stubCatalog{products: products}, nil)
	intents := intent.NewService(nil, time.Second)
	formatter := respond.NewFormatter("http://localhost:8080")
	return NewService(intents, engine, store, formatter, cache, Limits{SearchDepth: 20}), store
}

func TestRecommend_EndToEnd(t *testing.T) {
	service, _ := newTestService(catalog(), nil)

	response, err := service.Recommend(context.Background(), Request{
		UserID: "u1",
		Query:  "laptop under $1000",
		TopK:   3,
	})
	require.NoError(t, err)

	require.NotEmpty(t, response.Recommendations)
	assert.LessOrEqual(t, len(response.Recommendations), 3)
	for _, rec := range response.Recommendations {
		assert.Equal(t, "laptop", rec.Product.Category)
		assert.LessOrEqual(t, rec.Product.Price, 1000.0)
		assert.NotEmpty(t, rec.Explanation)
		assert.NotEmpty(t, rec.Evidence)
		assert.GreaterOrEqual(t, rec.FinalScore, 0.0)
		assert.LessOrEqual(t, rec.FinalScore, 1.0)
	}

	require.NotNil(t, response.BudgetInsight)
	assert.Equal(t, 1000.0, response.BudgetInsight.Budget)
}

func TestRecommend_EmptyPoolIsNotAnError(t *testing.T) {
	service, _ := newTestService(catalog(), nil)

	response, err := service.Recommend(context.Background(), Request{
		UserID: "u1",
		Query:  "submarine under $5",
	})
	require.NoError(t, err)
	assert.Empty(t, response.Recommendations)
	assert.Zero(t, response.ResultCount)
}

func TestRecommend_ConfiguredLimitsBoundResults(t *testing.T) {
	store := behavior.NewStore(nil)
	engine := search.NewMemoryEngine(&stubCatalog{products: catalog()}, nil)
	service := NewService(intent.NewService(nil, time.Second), engine, store,
		respond.NewFormatter(""), nil, Limits{SearchDepth: 20, FilterCap: 5, DefaultTopK: 1})

	response, err := service.Recommend(context.Background(), Request{
		UserID: "u1",
		Query:  "laptop under $1000",
	})
	require.NoError(t, err)
	assert.Len(t, response.Recommendations, 1,
		"a request without top_k uses the configured result count")
}

func TestRecommend_RetrievalErrorPropagates(t *testing.T) {
	engine := search.NewMemoryEngine(&stubCatalog{err: errors.New("db down")}, nil)
	store := behavior.NewStore(nil)
	service := NewService(intent.NewService(nil, time.Second), engine, store, respond.NewFormatter(""), nil, Limits{SearchDepth: 20})

	_, err := service.Recommend(context.Background(), Request{UserID: "u1", Query: "laptop"})
	assert.Error(t, err)
}

func TestRecommend_FeedbackShiftsRanking(t *testing.T) {
	service, _ := newTestService(catalog(), nil)
	ctx := context.Background()

	baseline, err := service.Recommend(ctx, Request{UserID: "fresh-user", Query: "laptop under $1000", TopK: 1})
	require.NoError(t, err)
	require.NotEmpty(t, baseline.Recommendations)

	// Heavy positive history on HP within laptops.
	fctx := domain.FeedbackContext{Category: "laptop", Brand: "HP", Price: 749, UserBudget: 1000}
	for i := 0; i < 40; i++ {
		ok := service.RecordFeedback(ctx, domain.FeedbackEvent{
			UserID:    "hp-fan",
			ProductID: "hp-envy",
			Action:    domain.ActionPurchase,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Context:   fctx,
		})
		require.True(t, ok)
	}

	personalized, err := service.Recommend(ctx, Request{UserID: "hp-fan", Query: "laptop under $1000", TopK: 1})
	require.NoError(t, err)
	require.NotEmpty(t, personalized.Recommendations)
	assert.Equal(t, "hp-envy", personalized.Recommendations[0].Product.ID,
		"strong purchase history must pull the preferred brand to the top")
}

func TestRecordFeedback_InvalidatesCache(t *testing.T) {
	cache := newMemCache()
	service, _ := newTestService(catalog(), cache)

	cache.profiles["u1"] = &domain.UserBehaviorProfile{UserID: "u1", InteractionCount: 50}

	ok := service.RecordFeedback(context.Background(), domain.FeedbackEvent{
		UserID:    "u1",
		ProductID: "dell-xps",
		Action:    domain.ActionClick,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	require.True(t, ok)
	assert.Equal(t, 1, cache.deletes)
	assert.NotContains(t, cache.profiles, "u1")
}

func TestRecordFeedback_InvalidActionDoesNotTouchCache(t *testing.T) {
	cache := newMemCache()
	service, _ := newTestService(catalog(), cache)

	ok := service.RecordFeedback(context.Background(), domain.FeedbackEvent{
		UserID:    "u1",
		ProductID: "dell-xps",
		Action:    "teleport",
	})
	assert.False(t, ok)
	assert.Zero(t, cache.deletes)
}

func TestProfileSource_CacheHitSkipsStore(t *testing.T) {
	cache := newMemCache()
	cached := &domain.UserBehaviorProfile{UserID: "u1", InteractionCount: 99}
	cache.profiles["u1"] = cached

	source := &profileSource{store: behavior.NewStore(nil), cache: cache}
	profile := source.GetBehaviorProfile("u1")

	require.NotNil(t, profile)
	assert.Equal(t, 99, profile.InteractionCount)
	assert.Equal(t, 1, cache.gets)
}

func TestProfileSource_StoresComputedProfileInCache(t *testing.T) {
	cache := newMemCache()
	store := behavior.NewStore(nil)

	fctx := domain.FeedbackContext{Category: "laptop", Brand: "Dell"}
	for i := 0; i < 6; i++ {
		require.True(t, store.RecordFeedback(context.Background(), domain.FeedbackEvent{
			UserID:    "u1",
			ProductID: "p1",
			Action:    domain.ActionClick,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Context:   fctx,
		}))
	}

	source := &profileSource{store: store, cache: cache}
	profile := source.GetBehaviorProfile("u1")

	require.NotNil(t, profile)
	assert.Contains(t, cache.profiles, "u1", "computed profile is written through to the cache")
}

func TestAnalyticsPassThrough(t *testing.T) {
	service, _ := newTestService(catalog(), nil)

	require.True(t, service.RecordFeedback(context.Background(), domain.FeedbackEvent{
		UserID:    "u1",
		ProductID: "dell-xps",
		Action:    domain.ActionView,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}))

	analytics := service.Analytics()
	assert.Equal(t, 1, analytics.TotalFeedbackEvents)
	assert.Equal(t, 1, analytics.UniqueUsers)
}
