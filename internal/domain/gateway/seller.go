package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// ProductImageUpload is one binary image part of the product form.
type ProductImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductForm is the seller product create/update submission. It is
// sent as multipart form data: scalar fields first, certifications as a
// JSON-encoded array, then the image parts, in that order.
type ProductForm struct {
	Name                         string
	Description                  string
	Price                        float64
	ComparePrice                 *float64
	CategoryID                   int64
	Quantity                     int
	IsOrganic                    bool
	IsVegan                      bool
	IsCrueltyFree                bool
	CarbonFootprint              *float64
	SustainabilityCertifications []string
	Images                       []ProductImageUpload
}

// DashboardSummary is the seller landing page data.
type DashboardSummary struct {
	TotalProducts  int     `json:"total_products"`
	ActiveProducts int     `json:"active_products"`
	TotalOrders    int     `json:"total_orders"`
	PendingOrders  int     `json:"pending_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	AverageRating  float64 `json:"average_rating"`
}

// AnalyticsPoint is one bucket of the seller analytics series.
type AnalyticsPoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Analytics is the seller analytics report for a period granularity.
type Analytics struct {
	Period string           `json:"period"`
	Series []AnalyticsPoint `json:"series"`
}

// SellerGateway fronts the backend's /seller resource. Every method
// requires a seller token in ctx.
type SellerGateway interface {
	Dashboard(ctx context.Context) (*DashboardSummary, error)
	Products(ctx context.Context, status string) ([]entity.Product, error)
	Product(ctx context.Context, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, form ProductForm) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, form ProductForm) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	Orders(ctx context.Context, status string) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.Order, error)
	Analytics(ctx context.Context, period string) (*Analytics, error)
}
