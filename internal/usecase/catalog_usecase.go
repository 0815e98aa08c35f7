package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
)

// CatalogUsecase serves the public product catalog. Browsing requires
// no session; reviews require one.
type CatalogUsecase interface {
	Products(ctx context.Context, query gateway.ProductQuery) (*gateway.ProductPage, error)
	Product(ctx context.Context, id int64) (*entity.Product, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	// Featured returns the home page products. On backend failure it
	// falls back to high eco-score products, then degrades to empty.
	Featured(ctx context.Context) ([]entity.Product, error)
	AddReview(ctx context.Context, session *entity.Session, productID int64, review gateway.ReviewInput) (*entity.Review, error)
}
