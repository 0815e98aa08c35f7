package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
)

// SellerUsecase serves the seller surface. Every method requires a
// session whose user is a seller account and fails with ErrSellerOnly
// otherwise, before touching the network.
type SellerUsecase interface {
	Dashboard(ctx context.Context, session *entity.Session) (*gateway.DashboardSummary, error)
	Products(ctx context.Context, session *entity.Session, status string) ([]entity.Product, error)
	Product(ctx context.Context, session *entity.Session, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, session *entity.Session, form gateway.ProductForm) (*entity.Product, error)
	UpdateProduct(ctx context.Context, session *entity.Session, id int64, form gateway.ProductForm) (*entity.Product, error)
	DeleteProduct(ctx context.Context, session *entity.Session, id int64) error
	Orders(ctx context.Context, session *entity.Session, status string) ([]entity.Order, error)
	// UpdateOrderStatus rejects transitions the order progression does
	// not allow before calling the backend.
	UpdateOrderStatus(ctx context.Context, session *entity.Session, id int64, status entity.OrderStatus) (*entity.Order, error)
	Analytics(ctx context.Context, session *entity.Session, period string) (*gateway.Analytics, error)
}
