package impl

import (
	"context"
	"testing"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellerSurfaceRejectsCustomers(t *testing.T) {
	t.Parallel()

	seller := &fakeSellerGateway{}
	svc := NewSellerService(seller, newDiscardLogger())
	ctx := context.Background()

	_, err := svc.Dashboard(ctx, newTestSession())
	assert.True(t, errors.Is(err, domainerrors.ErrSellerOnly))

	_, err = svc.Dashboard(ctx, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrLoginRequired))

	assert.Zero(t, seller.networkCalls(), "guards must fire before any backend call")
}

func TestSellerCreateProductLimitsImages(t *testing.T) {
	t.Parallel()

	seller := &fakeSellerGateway{}
	svc := NewSellerService(seller, newDiscardLogger())

	images := make([]gateway.ProductImageUpload, 6)
	for i := range images {
		images[i] = gateway.ProductImageUpload{Filename: "img.jpg", Data: []byte{1}}
	}

	_, err := svc.CreateProduct(context.Background(), newSellerSession(), gateway.ProductForm{
		Name:   "Bamboo Cutlery",
		Images: images,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTooManyImages))
	assert.Zero(t, seller.networkCalls())
}

func TestSellerCreateProduct(t *testing.T) {
	t.Parallel()

	seller := &fakeSellerGateway{}
	svc := NewSellerService(seller, newDiscardLogger())

	product, err := svc.CreateProduct(context.Background(), newSellerSession(), gateway.ProductForm{
		Name:                         "Bamboo Cutlery",
		Price:                        12.99,
		SustainabilityCertifications: []string{"Fair Trade", "Organic"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bamboo Cutlery", product.Name)
}

func TestSellerUpdateOrderStatusValidatesTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current entity.OrderStatus
		next    entity.OrderStatus
		wantErr error
	}{
		{name: "pending to confirmed", current: entity.OrderPending, next: entity.OrderConfirmed},
		{name: "confirmed to processing", current: entity.OrderConfirmed, next: entity.OrderProcessing},
		{name: "any to cancelled", current: entity.OrderProcessing, next: entity.OrderCancelled},
		{name: "skip ahead", current: entity.OrderPending, next: entity.OrderShipped, wantErr: domainerrors.ErrInvalidStatusChange},
		{name: "backwards", current: entity.OrderShipped, next: entity.OrderConfirmed, wantErr: domainerrors.ErrInvalidStatusChange},
		{name: "from terminal", current: entity.OrderDelivered, next: entity.OrderRefunded, wantErr: domainerrors.ErrInvalidStatusChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seller := &fakeSellerGateway{
				ordersFn: func(string) ([]entity.Order, error) {
					return []entity.Order{{ID: 5, Status: tt.current}}, nil
				},
			}
			svc := NewSellerService(seller, newDiscardLogger())

			order, err := svc.UpdateOrderStatus(context.Background(), newSellerSession(), 5, tt.next)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, order.Status)
		})
	}
}

func TestSellerUpdateOrderStatusUnknownOrder(t *testing.T) {
	t.Parallel()

	seller := &fakeSellerGateway{
		ordersFn: func(string) ([]entity.Order, error) {
			return []entity.Order{}, nil
		},
	}
	svc := NewSellerService(seller, newDiscardLogger())

	_, err := svc.UpdateOrderStatus(context.Background(), newSellerSession(), 404, entity.OrderConfirmed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}
