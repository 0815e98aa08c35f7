package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// ProductQuery carries the catalog listing filters.
type ProductQuery struct {
	Category    string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	MinEcoScore *float64
	Ordering    string
	Page        int
	Limit       int
}

// ProductPage is one page of catalog results after envelope
// normalization.
type ProductPage struct {
	Count    int
	Products []entity.Product
}

// ReviewInput is the add-review payload.
type ReviewInput struct {
	Rating               int    `json:"rating" validate:"required,min=1,max=5"`
	Title                string `json:"title" validate:"required"`
	Comment              string `json:"comment" validate:"required"`
	SustainabilityRating *int   `json:"sustainability_rating,omitempty" validate:"omitempty,min=1,max=5"`
	QualityRating        *int   `json:"quality_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// CatalogGateway fronts the backend's /products resource.
type CatalogGateway interface {
	Products(ctx context.Context, query ProductQuery) (*ProductPage, error)
	Product(ctx context.Context, id int64) (*entity.Product, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	Featured(ctx context.Context) ([]entity.Product, error)
	AddReview(ctx context.Context, productID int64, review ReviewInput) (*entity.Review, error)
}
