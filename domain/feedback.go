package domain

import (
	"time"

	"gorm.io/datatypes"
)

// FeedbackAction is the fixed set of interaction types the system learns from.
type FeedbackAction string

const (
	ActionView      FeedbackAction = "view"
	ActionClick     FeedbackAction = "click"
	ActionAddToCart FeedbackAction = "add_to_cart"
	ActionPurchase  FeedbackAction = "purchase"
	ActionSkip      FeedbackAction = "skip"
	ActionReject    FeedbackAction = "reject"
)

func (a FeedbackAction) Valid() bool {
	switch a {
	case ActionView, ActionClick, ActionAddToCart, ActionPurchase, ActionSkip, ActionReject:
		return true
	}
	return false
}

// FeedbackContext is the typed optional-field context carried by a feedback
// event. Unknown keys in the incoming payload are dropped at bind time.
type FeedbackContext struct {
	Category     string  `json:"category,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Price        float64 `json:"price,omitempty"`
	UserBudget   float64 `json:"user_budget,omitempty"`
	EcoCertified bool    `json:"eco_certified,omitempty"`
}

// FeedbackEvent is an immutable, append-only interaction record. Timestamp
// is ISO-8601; if it fails to parse, temporal decay is skipped.
type FeedbackEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID string            `gorm:"column:product_id;not null" json:"product_id"`
	Action    FeedbackAction    `gorm:"column:action;not null" json:"action"`
	Timestamp string            `gorm:"column:event_timestamp" json:"timestamp"`
	Context   FeedbackContext   `gorm:"-" json:"context"`
	RawCtx    datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"-"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (FeedbackEvent) TableName() string {
	return "feedback_events"
}
