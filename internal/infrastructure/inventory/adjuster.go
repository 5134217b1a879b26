package inventory

import (
	"context"

	"go.uber.org/zap"
	"paymint.backend/internal/domain/entities"
	"paymint.backend/pkg/logger"
)

// Adjuster records stock decrements for invoice items sold with stock
// tracking enabled. Quantities are logged but no inventory system is
// updated yet.
// TODO: push decrements to the store catalog once its API is available.
type Adjuster struct{}

// NewAdjuster creates a stock adjuster
func NewAdjuster() *Adjuster {
	return &Adjuster{}
}

// ReduceStock walks a paid invoice's items and records a decrement intent
// for every stock-managed item.
func (a *Adjuster) ReduceStock(ctx context.Context, order *entities.Order) {
	if order.Invoice == nil {
		return
	}
	for _, item := range order.Invoice.Items {
		if !item.ManageStock || item.Stock == nil {
			continue
		}
		logger.Info(ctx, "stock decrement recorded",
			zap.String("order_no", order.OrderNo),
			zap.String("item", item.Title),
			zap.Int("quantity", item.Quantity),
			zap.Int("stock_before", *item.Stock))
	}
}
