package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

// SellerGateway implements gateway.SellerGateway over the /seller
// resource. Product create/update submissions go out as multipart form
// data: scalar fields first, certifications JSON-encoded, then the
// image parts, in that order.
type SellerGateway struct {
	client *Client
}

// NewSellerGateway creates the seller gateway.
func NewSellerGateway(client *Client) gateway.SellerGateway {
	return &SellerGateway{client: client}
}

func (g *SellerGateway) Dashboard(ctx context.Context) (*gateway.DashboardSummary, error) {
	var summary gateway.DashboardSummary
	if err := g.client.do(ctx, http.MethodGet, "/seller/dashboard/", nil, nil, &summary); err != nil {
		return nil, errors.Wrap(err, "fetch seller dashboard")
	}

	return &summary, nil
}

func (g *SellerGateway) Products(ctx context.Context, status string) ([]entity.Product, error) {
	values := url.Values{}
	if status != "" {
		values.Set("status", status)
	}

	products, _, err := getList[entity.Product](ctx, g.client, "/seller/products/", values)
	if err != nil {
		return nil, errors.Wrap(err, "list seller products")
	}

	return products, nil
}

func (g *SellerGateway) Product(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	path := fmt.Sprintf("/seller/products/%d/", id)
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, errors.Wrapf(err, "fetch seller product %d", id)
	}

	return &product, nil
}

func (g *SellerGateway) CreateProduct(ctx context.Context, form gateway.ProductForm) (*entity.Product, error) {
	var product entity.Product
	if err := g.postForm(ctx, http.MethodPost, "/seller/products/", form, &product); err != nil {
		return nil, errors.Wrap(err, "create product")
	}

	return &product, nil
}

func (g *SellerGateway) UpdateProduct(ctx context.Context, id int64, form gateway.ProductForm) (*entity.Product, error) {
	var product entity.Product
	path := fmt.Sprintf("/seller/products/%d/", id)
	if err := g.postForm(ctx, http.MethodPut, path, form, &product); err != nil {
		return nil, errors.Wrapf(err, "update product %d", id)
	}

	return &product, nil
}

func (g *SellerGateway) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/seller/products/%d/", id)
	if err := g.client.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return errors.Wrapf(err, "delete product %d", id)
	}

	return nil
}

func (g *SellerGateway) Orders(ctx context.Context, status string) ([]entity.Order, error) {
	values := url.Values{}
	if status != "" {
		values.Set("status", status)
	}

	orders, _, err := getList[entity.Order](ctx, g.client, "/seller/orders/", values)
	if err != nil {
		return nil, errors.Wrap(err, "list seller orders")
	}

	return orders, nil
}

func (g *SellerGateway) UpdateOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.Order, error) {
	body := map[string]any{"status": status}

	var order entity.Order
	path := fmt.Sprintf("/seller/orders/%d/", id)
	if err := g.client.do(ctx, http.MethodPatch, path, nil, body, &order); err != nil {
		return nil, errors.Wrapf(err, "update status of order %d", id)
	}

	return &order, nil
}

func (g *SellerGateway) Analytics(ctx context.Context, period string) (*gateway.Analytics, error) {
	values := url.Values{}
	if period != "" {
		values.Set("period", period)
	}

	var analytics gateway.Analytics
	if err := g.client.do(ctx, http.MethodGet, "/seller/analytics/", values, nil, &analytics); err != nil {
		return nil, errors.Wrap(err, "fetch seller analytics")
	}

	return &analytics, nil
}

// postForm encodes the product form as multipart and sends it. Field
// order matters to the backend's parser and is preserved here.
func (g *SellerGateway) postForm(ctx context.Context, method, path string, form gateway.ProductForm, out any) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := writeFormFields(writer, form); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "close multipart writer")
	}

	req, err := g.client.newRequest(ctx, method, path, nil, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return g.client.send(req, out)
}

func writeFormFields(writer *multipart.Writer, form gateway.ProductForm) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", form.Name},
		{"description", form.Description},
		{"price", strconv.FormatFloat(form.Price, 'f', 2, 64)},
		{"category_id", strconv.FormatInt(form.CategoryID, 10)},
		{"quantity", strconv.Itoa(form.Quantity)},
		{"is_organic", strconv.FormatBool(form.IsOrganic)},
		{"is_vegan", strconv.FormatBool(form.IsVegan)},
		{"is_cruelty_free", strconv.FormatBool(form.IsCrueltyFree)},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return errors.Wrapf(err, "write form field %s", field.name)
		}
	}

	if form.ComparePrice != nil {
		if err := writer.WriteField("compare_price", strconv.FormatFloat(*form.ComparePrice, 'f', 2, 64)); err != nil {
			return errors.Wrap(err, "write form field compare_price")
		}
	}
	if form.CarbonFootprint != nil {
		if err := writer.WriteField("carbon_footprint", strconv.FormatFloat(*form.CarbonFootprint, 'f', -1, 64)); err != nil {
			return errors.Wrap(err, "write form field carbon_footprint")
		}
	}

	certifications := form.SustainabilityCertifications
	if certifications == nil {
		certifications = []string{}
	}
	certs, err := json.Marshal(certifications)
	if err != nil {
		return errors.Wrap(err, "encode certifications")
	}
	if err := writer.WriteField("sustainability_certifications", string(certs)); err != nil {
		return errors.Wrap(err, "write form field sustainability_certifications")
	}

	for _, image := range form.Images {
		part, err := createImagePart(writer, image)
		if err != nil {
			return err
		}
		if _, err := part.Write(image.Data); err != nil {
			return errors.Wrapf(err, "write image %s", image.Filename)
		}
	}

	return nil
}

func createImagePart(writer *multipart.Writer, image gateway.ProductImageUpload) (io.Writer, error) {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, image.Filename))
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, errors.Wrapf(err, "create image part %s", image.Filename)
	}

	return part, nil
}
