package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shopSense/business/recommend"
	"shopSense/business/respond"
	"shopSense/domain"
	"shopSense/pkg/logger"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
	}

	RecommendService interface {
		Recommend(ctx context.Context, req recommend.Request) (respond.UIResponse, error)
		RecordFeedback(ctx context.Context, event domain.FeedbackEvent) bool
		Analytics() domain.BehaviorAnalytics
		Profile(userID string) *domain.UserBehaviorProfile
	}

	RecommendRequest struct {
		Query         string   `json:"query" validate:"required,min=2"`
		TopK          int      `json:"top_k" validate:"gte=0,lte=20"`
		MaxBudget     float64  `json:"max_budget" validate:"gte=0"`
		ValuePriority float64  `json:"value_priority" validate:"gte=0,lte=1"`
		BoycottBrands []string `json:"boycott_brands"`
	}

	FeedbackRequest struct {
		ProductID string                 `json:"product_id" validate:"required"`
		Action    string                 `json:"action" validate:"required,oneof=view click add_to_cart purchase skip reject"`
		Timestamp string                 `json:"timestamp"`
		Context   domain.FeedbackContext `json:"context"`
	}
)

func NewRecommendHandler(svc RecommendService) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
	}
}

func (h *RecommendHandler) Recommend(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	response, err := h.recommendService.Recommend(c.Request().Context(), recommend.Request{
		UserID: userID,
		Query:  req.Query,
		TopK:   req.TopK,
		Constraints: domain.FinancialConstraints{
			MaxBudget:     req.MaxBudget,
			ValuePriority: req.ValuePriority,
			BoycottBrands: req.BoycottBrands,
		},
	})
	if err != nil {
		logger.Error("recommendation failed", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(response))
}

func (h *RecommendHandler) Feedback(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	recorded := h.recommendService.RecordFeedback(c.Request().Context(), domain.FeedbackEvent{
		UserID:    userID,
		ProductID: req.ProductID,
		Action:    domain.FeedbackAction(req.Action),
		Timestamp: timestamp,
		Context:   req.Context,
	})
	if !recorded {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "feedback could not be recorded"})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"recorded": true,
	}))
}

func (h *RecommendHandler) Analytics(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.recommendService.Analytics()))
}

func (h *RecommendHandler) Profile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	profile := h.recommendService.Profile(userID)
	if profile == nil {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
			"profile":    nil,
			"cold_start": true,
		}))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}
