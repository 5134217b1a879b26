package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"paymint.backend/internal/domain/entities"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []entities.OrderStatus{
		entities.OrderStatusPending,
		entities.OrderStatusPaid,
		entities.OrderStatusCancelled,
		entities.OrderStatusExpired,
		entities.OrderStatusPartiallyPaid,
	} {
		assert.True(t, entities.ValidOrderStatus(s), "status %q", s)
	}
	assert.False(t, entities.ValidOrderStatus("shipped"))
	assert.False(t, entities.ValidOrderStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []entities.PaymentStatus{
		entities.PaymentStatusPending,
		entities.PaymentStatusProcessing,
		entities.PaymentStatusCompleted,
		entities.PaymentStatusFailed,
		entities.PaymentStatusCancelled,
	} {
		assert.True(t, entities.ValidPaymentStatus(s), "status %q", s)
	}
	assert.False(t, entities.ValidPaymentStatus("settled"))
	assert.False(t, entities.ValidPaymentStatus(""))
}
