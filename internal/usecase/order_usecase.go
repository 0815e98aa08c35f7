package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// OrderUsecase serves the customer's order history. Every method
// requires a session.
type OrderUsecase interface {
	Orders(ctx context.Context, session *entity.Session) ([]entity.Order, error)
	Order(ctx context.Context, session *entity.Session, id int64) (*entity.Order, error)
	// Cancel is only allowed while the order is pending or confirmed.
	Cancel(ctx context.Context, session *entity.Session, id int64) (*entity.Order, error)
}
