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

// CatalogGateway implements gateway.CatalogGateway over the /products
// resource.
type CatalogGateway struct {
	client *Client
}

// NewCatalogGateway creates the catalog gateway.
func NewCatalogGateway(client *Client) gateway.CatalogGateway {
	return &CatalogGateway{client: client}
}

func (g *CatalogGateway) Products(ctx context.Context, query gateway.ProductQuery) (*gateway.ProductPage, error) {
	values := url.Values{}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.MinPrice != nil {
		values.Set("min_price", formatFloat(*query.MinPrice))
	}
	if query.MaxPrice != nil {
		values.Set("max_price", formatFloat(*query.MaxPrice))
	}
	if query.MinEcoScore != nil {
		values.Set("eco_score_min", formatFloat(*query.MinEcoScore))
	}
	if query.Ordering != "" {
		values.Set("ordering", query.Ordering)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}

	products, count, err := getList[entity.Product](ctx, g.client, "/products/", values)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	return &gateway.ProductPage{Count: count, Products: products}, nil
}

func (g *CatalogGateway) Product(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	path := fmt.Sprintf("/products/%d/", id)
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, errors.Wrapf(err, "fetch product %d", id)
	}

	return &product, nil
}

func (g *CatalogGateway) Categories(ctx context.Context) ([]entity.Category, error) {
	categories, _, err := getList[entity.Category](ctx, g.client, "/products/categories/", nil)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	return categories, nil
}

func (g *CatalogGateway) Featured(ctx context.Context) ([]entity.Product, error) {
	products, _, err := getList[entity.Product](ctx, g.client, "/products/featured/", nil, "featured_products")
	if err != nil {
		return nil, errors.Wrap(err, "list featured products")
	}

	return products, nil
}

func (g *CatalogGateway) AddReview(ctx context.Context, productID int64, review gateway.ReviewInput) (*entity.Review, error) {
	var created entity.Review
	path := fmt.Sprintf("/products/%d/add_review/", productID)
	if err := g.client.do(ctx, http.MethodPost, path, nil, review, &created); err != nil {
		return nil, errors.Wrapf(err, "add review to product %d", productID)
	}

	return &created, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
