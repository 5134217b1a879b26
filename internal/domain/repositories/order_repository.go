package repositories

import (
	"context"

	"paymint.backend/internal/domain/entities"
)

// OrderRepository defines order data operations. Orders are addressed by
// their orderNo, mirroring the public API.
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByOrderNo(ctx context.Context, orderNo string) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter, limit, offset int) ([]*entities.Order, int64, error)
	ListOrderNosByOwner(ctx context.Context, owner string) ([]string, error)
	Update(ctx context.Context, orderNo string, updates map[string]interface{}) error
	Delete(ctx context.Context, orderNo string) error
}
