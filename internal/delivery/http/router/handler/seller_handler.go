package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/delivery/http/response"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SellerHandler serves the seller surface.
type SellerHandler struct {
	seller usecase.SellerUsecase
	logger *slog.Logger
}

// NewSellerHandler is the constructor for SellerHandler, injected by Fx.
func NewSellerHandler(seller usecase.SellerUsecase, logger *slog.Logger) *SellerHandler {
	return &SellerHandler{
		seller: seller,
		logger: logger,
	}
}

// Dashboard returns the seller landing page summary.
func (h *SellerHandler) Dashboard(c echo.Context) error {
	summary, err := h.seller.Dashboard(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// Products lists the seller's own products.
func (h *SellerHandler) Products(c echo.Context) error {
	products, err := h.seller.Products(c.Request().Context(), deliverycontext.GetSession(c), c.QueryParam("status"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Product returns one of the seller's products.
func (h *SellerHandler) Product(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	product, err := h.seller.Product(c.Request().Context(), deliverycontext.GetSession(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// CreateProduct creates a product from the multipart listing form.
func (h *SellerHandler) CreateProduct(c echo.Context) error {
	form, err := h.bindProductForm(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	product, err := h.seller.CreateProduct(c.Request().Context(), deliverycontext.GetSession(c), *form)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created")
}

// UpdateProduct updates a product from the multipart listing form.
func (h *SellerHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	form, err := h.bindProductForm(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	product, err := h.seller.UpdateProduct(c.Request().Context(), deliverycontext.GetSession(c), id, *form)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated")
}

// DeleteProduct removes a product listing.
func (h *SellerHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	if err := h.seller.DeleteProduct(c.Request().Context(), deliverycontext.GetSession(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}

// Orders lists the orders containing the seller's products.
func (h *SellerHandler) Orders(c echo.Context) error {
	orders, err := h.seller.Orders(c.Request().Context(), deliverycontext.GetSession(c), c.QueryParam("status"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

type orderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus advances an order along the fulfillment progression.
func (h *SellerHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var input orderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "A status is required")
	}

	order, err := h.seller.UpdateOrderStatus(c.Request().Context(), deliverycontext.GetSession(c), id, entity.OrderStatus(input.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// Analytics returns the seller's revenue and order series.
func (h *SellerHandler) Analytics(c echo.Context) error {
	analytics, err := h.seller.Analytics(c.Request().Context(), deliverycontext.GetSession(c), c.QueryParam("period"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, analytics, "")
}

// bindProductForm reads the multipart listing form the seller UI
// submits: scalar fields, a JSON-encoded certifications array, and up
// to five image files under "images".
func (h *SellerHandler) bindProductForm(c echo.Context) (*gateway.ProductForm, error) {
	form := &gateway.ProductForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}
	if form.Name == "" {
		return nil, errors.New("name is required")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price <= 0 {
		return nil, errors.New("price must be a positive number")
	}
	form.Price = price

	categoryID, err := strconv.ParseInt(c.FormValue("category_id"), 10, 64)
	if err != nil || categoryID <= 0 {
		return nil, errors.New("category_id is required")
	}
	form.CategoryID = categoryID

	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || quantity < 0 {
		return nil, errors.New("quantity must be a non-negative number")
	}
	form.Quantity = quantity

	form.IsOrganic = formBool(c, "is_organic")
	form.IsVegan = formBool(c, "is_vegan")
	form.IsCrueltyFree = formBool(c, "is_cruelty_free")
	form.ComparePrice = formFloat(c, "compare_price")
	form.CarbonFootprint = formFloat(c, "carbon_footprint")

	if raw := c.FormValue("sustainability_certifications"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.SustainabilityCertifications); err != nil {
			return nil, errors.New("sustainability_certifications must be a JSON array of strings")
		}
	}

	images, err := h.formImages(c)
	if err != nil {
		return nil, err
	}
	form.Images = images

	return form, nil
}

func (h *SellerHandler) formImages(c echo.Context) ([]gateway.ProductImageUpload, error) {
	multipartForm, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all means no images.
		return nil, nil
	}

	files := multipartForm.File["images"]
	images := make([]gateway.ProductImageUpload, 0, len(files))
	for _, fileHeader := range files {
		image, err := readImage(fileHeader)
		if err != nil {
			return nil, err
		}
		images = append(images, *image)
	}

	return images, nil
}

func readImage(fileHeader *multipart.FileHeader) (*gateway.ProductImageUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open uploaded image %s", fileHeader.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read uploaded image %s", fileHeader.Filename)
	}

	return &gateway.ProductImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func formBool(c echo.Context, name string) bool {
	value, err := strconv.ParseBool(c.FormValue(name))
	if err != nil {
		return false
	}

	return value
}

func formFloat(c echo.Context, name string) *float64 {
	raw := c.FormValue(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &value
}
