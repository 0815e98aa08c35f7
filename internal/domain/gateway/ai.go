package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// EcoScoreInput describes a product for eco-score estimation.
type EcoScoreInput struct {
	Name                         string   `json:"name"`
	Description                  string   `json:"description"`
	Category                     string   `json:"category"`
	IsOrganic                    bool     `json:"is_organic"`
	IsVegan                      bool     `json:"is_vegan"`
	IsCrueltyFree                bool     `json:"is_cruelty_free"`
	SustainabilityCertifications []string `json:"sustainability_certifications"`
	CarbonFootprint              *float64 `json:"carbon_footprint,omitempty"`
}

// EcoScoreResult is the AI engine's scoring answer.
type EcoScoreResult struct {
	EcoScore float64  `json:"eco_score"`
	Factors  []string `json:"factors"`
}

// SustainabilityInsights summarizes a user's shopping footprint.
type SustainabilityInsights struct {
	CarbonFootprintSavedKg      float64  `json:"carbon_footprint_saved_kg"`
	TreesSaved                  int      `json:"trees_saved"`
	PlasticReducedKg            float64  `json:"plastic_reduced_kg"`
	SustainabilityLevel         string   `json:"sustainability_level"`
	EcoProductsBought           int      `json:"eco_products_bought"`
	PersonalizedRecommendations []string `json:"personalized_recommendations"`
}

// AIGateway fronts the backend's AI engine. All calls are best-effort;
// the usecase layer degrades to local fallbacks on error.
type AIGateway interface {
	Recommendations(ctx context.Context, userID int64, limit int) ([]entity.Product, error)
	SimilarProducts(ctx context.Context, productID int64, limit int) ([]entity.Product, error)
	TrendingProducts(ctx context.Context, category string, limit int) ([]entity.Product, error)
	CalculateEcoScore(ctx context.Context, input EcoScoreInput) (*EcoScoreResult, error)
	SustainabilityInsights(ctx context.Context) (*SustainabilityInsights, error)
}
