package postgres

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shopSense/domain"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{
		DB: db,
	}
}

// SaveEvent appends one feedback event. Events are never updated or
// deleted.
func (r *FeedbackRepository) SaveEvent(ctx context.Context, event domain.FeedbackEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	event.RawCtx = contextToJSON(event.Context)

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save feedback event: %w", err)
	}

	return nil
}

func contextToJSON(fctx domain.FeedbackContext) datatypes.JSONMap {
	raw := datatypes.JSONMap{}
	if fctx.Category != "" {
		raw["category"] = fctx.Category
	}
	if fctx.Brand != "" {
		raw["brand"] = fctx.Brand
	}
	if fctx.Price > 0 {
		raw["price"] = fctx.Price
	}
	if fctx.UserBudget > 0 {
		raw["user_budget"] = fctx.UserBudget
	}
	if fctx.EcoCertified {
		raw["eco_certified"] = true
	}
	return raw
}
