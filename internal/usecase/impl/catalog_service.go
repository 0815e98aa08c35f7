package impl

import (
	"context"
	"log/slog"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/pkg/errors"
)

const (
	featuredEcoScoreMin = 8
	featuredLimit       = 8
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalog gateway.CatalogGateway
	logger  *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	catalog gateway.CatalogGateway,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		catalog: catalog,
		logger:  logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Products lists the catalog with the given filters.
func (srv *catalogService) Products(ctx context.Context, query gateway.ProductQuery) (*gateway.ProductPage, error) {
	page, err := srv.catalog.Products(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	return page, nil
}

// Product fetches one product.
func (srv *catalogService) Product(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.catalog.Product(ctx, id)
	if err != nil {
		if isBackendNotFound(err) {
			return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %d", id)
		}

		return nil, errors.Wrap(err, "fetch product")
	}

	return product, nil
}

// Categories lists the product categories.
func (srv *catalogService) Categories(ctx context.Context) ([]entity.Category, error) {
	categories, err := srv.catalog.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	return categories, nil
}

// Featured returns the home page products. When the featured endpoint
// fails it falls back to high eco-score products, and failing that
// renders an empty shelf rather than an error.
func (srv *catalogService) Featured(ctx context.Context) ([]entity.Product, error) {
	products, err := srv.catalog.Featured(ctx)
	if err == nil {
		return products, nil
	}
	srv.log(ctx).Warn("featured endpoint failed, falling back to high eco-score products", slog.Any("error", err))

	minScore := float64(featuredEcoScoreMin)
	page, err := srv.catalog.Products(ctx, gateway.ProductQuery{
		MinEcoScore: &minScore,
		Ordering:    "-eco_score",
		Limit:       featuredLimit,
	})
	if err != nil {
		srv.log(ctx).Error("featured fallback failed", slog.Any("error", err))

		return []entity.Product{}, nil
	}

	return page.Products, nil
}

// AddReview posts a review on behalf of the session's user.
func (srv *catalogService) AddReview(ctx context.Context, session *entity.Session, productID int64, review gateway.ReviewInput) (*entity.Review, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	authCtx := gateway.WithToken(ctx, session.Token)
	created, err := srv.catalog.AddReview(authCtx, productID, review)
	if err != nil {
		return nil, errors.Wrap(err, "add review")
	}

	return created, nil
}

func isBackendNotFound(err error) bool {
	var backendErr *domainerrors.BackendError

	return errors.As(err, &backendErr) && backendErr.HTTPCode() == 404
}
