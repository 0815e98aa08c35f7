package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/delivery/http/response"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	catalog usecase.CatalogUsecase
	logger  *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalog usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Products lists the catalog with the browse filters.
func (h *CatalogHandler) Products(c echo.Context) error {
	query := gateway.ProductQuery{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}
	query.MinPrice = floatParam(c, "min_price")
	query.MaxPrice = floatParam(c, "max_price")
	query.MinEcoScore = floatParam(c, "eco_score_min")
	query.Page = intParam(c, "page")
	query.Limit = intParam(c, "limit")

	page, err := h.catalog.Products(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Product returns one product's detail page data.
func (h *CatalogHandler) Product(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	product, err := h.catalog.Product(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// Categories lists the product categories.
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// Featured returns the home page products. The usecase degrades on
// backend failure, so this never surfaces an error to the shopper.
func (h *CatalogHandler) Featured(c echo.Context) error {
	products, err := h.catalog.Featured(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// AddReview posts a product review for the current session's user.
func (h *CatalogHandler) AddReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var input gateway.ReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Review needs a rating from 1 to 5, a title and a comment")
	}

	review, err := h.catalog.AddReview(c.Request().Context(), deliverycontext.GetSession(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Review submitted")
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func intParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}

func floatParam(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &value
}
