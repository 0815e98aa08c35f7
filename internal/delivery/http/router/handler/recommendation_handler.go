package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/delivery/http/response"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RecommendationHandler serves the AI-backed discovery surfaces.
type RecommendationHandler struct {
	recommendations usecase.RecommendationUsecase
	logger          *slog.Logger
}

// NewRecommendationHandler is the constructor for RecommendationHandler,
// injected by Fx.
func NewRecommendationHandler(recommendations usecase.RecommendationUsecase, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		logger:          logger,
	}
}

// Recommendations returns personalized product picks.
func (h *RecommendationHandler) Recommendations(c echo.Context) error {
	products, err := h.recommendations.Recommendations(c.Request().Context(), deliverycontext.GetSession(c), intParam(c, "limit"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Similar returns products related to one product.
func (h *RecommendationHandler) Similar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	products, err := h.recommendations.SimilarProducts(c.Request().Context(), id, intParam(c, "limit"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Trending returns currently popular products.
func (h *RecommendationHandler) Trending(c echo.Context) error {
	products, err := h.recommendations.TrendingProducts(c.Request().Context(), c.QueryParam("category"), intParam(c, "limit"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// EcoScore scores a product description for sustainability.
func (h *RecommendationHandler) EcoScore(c echo.Context) error {
	var input gateway.EcoScoreInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid eco-score input")
	}

	result, err := h.recommendations.EcoScore(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "")
}

// Insights summarizes the current user's sustainability footprint.
func (h *RecommendationHandler) Insights(c echo.Context) error {
	insights, err := h.recommendations.Insights(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, insights, "")
}
