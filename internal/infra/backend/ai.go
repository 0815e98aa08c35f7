package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

// AIGateway implements gateway.AIGateway over the /ai resource.
type AIGateway struct {
	client *Client
}

// NewAIGateway creates the AI gateway.
func NewAIGateway(client *Client) gateway.AIGateway {
	return &AIGateway{client: client}
}

func (g *AIGateway) Recommendations(ctx context.Context, userID int64, limit int) ([]entity.Product, error) {
	values := url.Values{}
	if userID > 0 {
		values.Set("user_id", strconv.FormatInt(userID, 10))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	products, _, err := getList[entity.Product](ctx, g.client, "/ai/recommendations/", values, "recommended_products", "recommendations")
	if err != nil {
		return nil, errors.Wrap(err, "fetch recommendations")
	}

	return products, nil
}

func (g *AIGateway) SimilarProducts(ctx context.Context, productID int64, limit int) ([]entity.Product, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	path := fmt.Sprintf("/ai/products/%d/similar/", productID)
	products, _, err := getList[entity.Product](ctx, g.client, path, values, "similar_products")
	if err != nil {
		return nil, errors.Wrapf(err, "fetch products similar to %d", productID)
	}

	return products, nil
}

func (g *AIGateway) TrendingProducts(ctx context.Context, category string, limit int) ([]entity.Product, error) {
	values := url.Values{}
	if category != "" {
		values.Set("category", category)
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	products, _, err := getList[entity.Product](ctx, g.client, "/ai/trending-products/", values, "trending_products")
	if err != nil {
		return nil, errors.Wrap(err, "fetch trending products")
	}

	return products, nil
}

func (g *AIGateway) CalculateEcoScore(ctx context.Context, input gateway.EcoScoreInput) (*gateway.EcoScoreResult, error) {
	var result gateway.EcoScoreResult
	if err := g.client.do(ctx, http.MethodPost, "/ai/eco-score/calculate/", nil, input, &result); err != nil {
		return nil, errors.Wrap(err, "calculate eco score")
	}

	return &result, nil
}

func (g *AIGateway) SustainabilityInsights(ctx context.Context) (*gateway.SustainabilityInsights, error) {
	var insights gateway.SustainabilityInsights
	if err := g.client.do(ctx, http.MethodGet, "/ai/sustainability-insights/", nil, nil, &insights); err != nil {
		return nil, errors.Wrap(err, "fetch sustainability insights")
	}

	return &insights, nil
}
