package repositories

import (
	"context"

	"paymint.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByPaymentNo(ctx context.Context, paymentNo string) (*entities.Payment, error)
	List(ctx context.Context, filter entities.PaymentFilter, orderRefs []string, limit, offset int) ([]*entities.Payment, int64, error)
	Update(ctx context.Context, paymentNo string, updates map[string]interface{}) error
	Delete(ctx context.Context, paymentNo string) error
}
