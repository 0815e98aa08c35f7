package impl

import (
	"context"
	"log/slog"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"
)

const defaultEcoScore = 7.5

// recommendationService implements the RecommendationUsecase interface.
// The AI engine is best-effort: every surface has a deterministic local
// fallback so these endpoints never fail outward.
type recommendationService struct {
	ai      gateway.AIGateway
	catalog gateway.CatalogGateway
	logger  *slog.Logger
}

// NewRecommendationService is the constructor for recommendationService.
func NewRecommendationService(
	ai gateway.AIGateway,
	catalog gateway.CatalogGateway,
	logger *slog.Logger,
) usecase.RecommendationUsecase {
	return &recommendationService{
		ai:      ai,
		catalog: catalog,
		logger:  logger,
	}
}

func (srv *recommendationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Recommendations falls back to high eco-score products.
func (srv *recommendationService) Recommendations(ctx context.Context, session *entity.Session, limit int) ([]entity.Product, error) {
	ctx = srv.withSessionToken(ctx, session)

	var userID int64
	if session != nil && session.User != nil {
		userID = session.User.ID
	}

	products, err := srv.ai.Recommendations(ctx, userID, limit)
	if err == nil {
		return products, nil
	}
	srv.log(ctx).Warn("recommendations engine unavailable, using eco-score fallback", slog.Any("error", err))

	minScore := float64(featuredEcoScoreMin)

	return srv.fallbackProducts(ctx, gateway.ProductQuery{
		MinEcoScore: &minScore,
		Ordering:    "-eco_score",
		Limit:       limit,
	}), nil
}

// SimilarProducts falls back to products from the same category.
func (srv *recommendationService) SimilarProducts(ctx context.Context, productID int64, limit int) ([]entity.Product, error) {
	products, err := srv.ai.SimilarProducts(ctx, productID, limit)
	if err == nil {
		return products, nil
	}
	srv.log(ctx).Warn("similar-products engine unavailable, using category fallback", slog.Any("error", err))

	product, err := srv.catalog.Product(ctx, productID)
	if err != nil {
		return []entity.Product{}, nil
	}

	same := srv.fallbackProducts(ctx, gateway.ProductQuery{
		Category: product.Category.Name,
		Limit:    limit + 1,
	})

	// The product itself is not similar to itself.
	filtered := make([]entity.Product, 0, len(same))
	for _, p := range same {
		if p.ID == productID {
			continue
		}
		filtered = append(filtered, p)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, nil
}

// TrendingProducts falls back to recently added products.
func (srv *recommendationService) TrendingProducts(ctx context.Context, category string, limit int) ([]entity.Product, error) {
	products, err := srv.ai.TrendingProducts(ctx, category, limit)
	if err == nil {
		return products, nil
	}
	srv.log(ctx).Warn("trending engine unavailable, using recency fallback", slog.Any("error", err))

	return srv.fallbackProducts(ctx, gateway.ProductQuery{
		Category: category,
		Ordering: "-created_at",
		Limit:    limit,
	}), nil
}

// EcoScore falls back to a neutral default score.
func (srv *recommendationService) EcoScore(ctx context.Context, input gateway.EcoScoreInput) (*gateway.EcoScoreResult, error) {
	result, err := srv.ai.CalculateEcoScore(ctx, input)
	if err == nil {
		return result, nil
	}
	srv.log(ctx).Warn("eco-score engine unavailable, using default score", slog.Any("error", err))

	return &gateway.EcoScoreResult{
		EcoScore: defaultEcoScore,
		Factors:  []string{"Estimated score. The sustainability engine is temporarily unavailable."},
	}, nil
}

// Insights falls back to a beginner profile.
func (srv *recommendationService) Insights(ctx context.Context, session *entity.Session) (*gateway.SustainabilityInsights, error) {
	ctx = srv.withSessionToken(ctx, session)

	insights, err := srv.ai.SustainabilityInsights(ctx)
	if err == nil {
		return insights, nil
	}
	srv.log(ctx).Warn("insights engine unavailable, using beginner profile", slog.Any("error", err))

	return &gateway.SustainabilityInsights{
		SustainabilityLevel: "Beginner",
		PersonalizedRecommendations: []string{
			"Start with organic and cruelty-free products",
			"Look for items with an eco-score above 8",
			"Choose products with sustainability certifications",
		},
	}, nil
}

func (srv *recommendationService) withSessionToken(ctx context.Context, session *entity.Session) context.Context {
	if session == nil {
		return ctx
	}

	return gateway.WithToken(ctx, session.Token)
}

// fallbackProducts degrades to an empty shelf when even the catalog is
// unreachable.
func (srv *recommendationService) fallbackProducts(ctx context.Context, query gateway.ProductQuery) []entity.Product {
	page, err := srv.catalog.Products(ctx, query)
	if err != nil {
		srv.log(ctx).Error("catalog fallback failed", slog.Any("error", err))

		return []entity.Product{}
	}

	return page.Products
}
