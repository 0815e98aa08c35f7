package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
)

// RecommendationUsecase fronts the AI engine. Every method degrades to
// a deterministic local fallback when the engine is unavailable, so the
// storefront never renders an error for these surfaces.
type RecommendationUsecase interface {
	// Recommendations falls back to high eco-score products.
	Recommendations(ctx context.Context, session *entity.Session, limit int) ([]entity.Product, error)
	// SimilarProducts falls back to products from the same category.
	SimilarProducts(ctx context.Context, productID int64, limit int) ([]entity.Product, error)
	// TrendingProducts falls back to recently added products.
	TrendingProducts(ctx context.Context, category string, limit int) ([]entity.Product, error)
	// EcoScore falls back to a neutral default score.
	EcoScore(ctx context.Context, input gateway.EcoScoreInput) (*gateway.EcoScoreResult, error)
	// Insights falls back to a beginner profile.
	Insights(ctx context.Context, session *entity.Session) (*gateway.SustainabilityInsights, error)
}
