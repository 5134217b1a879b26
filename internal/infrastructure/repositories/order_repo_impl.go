package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/infrastructure/models"
	"paymint.backend/pkg/utils"
)

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	m := orderToModel(order)
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByOrderNo gets an order by its order number
func (r *OrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*entities.Order, error) {
	var m models.Order
	if err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return orderToEntity(&m), nil
}

// List lists orders with filters, newest first
func (r *OrderRepository) List(ctx context.Context, filter entities.OrderFilter, limit, offset int) ([]*entities.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.Order
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*entities.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, orderToEntity(&orderModels[i]))
	}
	return orders, total, nil
}

// ListOrderNosByOwner returns the order numbers owned by a user; used to
// scope non-admin payment listings.
func (r *OrderRepository) ListOrderNosByOwner(ctx context.Context, owner string) ([]string, error) {
	var orderNos []string
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("owner = ?", owner).Pluck("order_no", &orderNos).Error; err != nil {
		return nil, err
	}
	return orderNos, nil
}

// Update applies a partial set of column updates to an order
func (r *OrderRepository) Update(ctx context.Context, orderNo string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("order_no = ?", orderNo).Updates(serializeJSONColumns(updates))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, orderNo string) error {
	result := r.db.WithContext(ctx).Where("order_no = ?", orderNo).Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListExpiredPending returns order numbers of pending orders whose
// expiration date has passed.
func (r *OrderRepository) ListExpiredPending(ctx context.Context, limit int) ([]string, error) {
	var orderNos []string
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", string(entities.OrderStatusPending)).
		Where("expiration_date IS NOT NULL AND expiration_date < ?", time.Now()).
		Limit(limit).
		Pluck("order_no", &orderNos).Error
	if err != nil {
		return nil, err
	}
	return orderNos, nil
}

// ExpireOrders marks the given orders as expired.
func (r *OrderRepository) ExpireOrders(ctx context.Context, orderNos []string) error {
	if len(orderNos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_no IN ?", orderNos).
		Update("status", string(entities.OrderStatusExpired)).Error
}

// jsonColumns are the embedded-document columns. Map-based Updates bypass
// GORM's field serializers, so their values are marshaled here.
var jsonColumns = map[string]bool{
	"items":       true,
	"recipients":  true,
	"payments":    true,
	"transaction": true,
}

func serializeJSONColumns(updates map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if jsonColumns[k] && v != nil {
			if b, err := json.Marshal(v); err == nil {
				out[k] = string(b)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func orderToModel(o *entities.Order) *models.Order {
	m := &models.Order{
		ID:        o.ID,
		OrderNo:   o.OrderNo,
		Owner:     o.Owner,
		Type:      string(o.Type),
		Status:    string(o.Status),
		Total:     o.Total,
		Currency:  o.Currency,
		Payments:  o.Payments,
		Notes:     o.Notes.Ptr(),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		PaidAt:    o.PaidAt,
	}
	if inv := o.Invoice; inv != nil {
		expiration := inv.ExpirationDate
		m.ClientName = &inv.ClientName
		m.ClientEmail = inv.ClientEmail.Ptr()
		m.ClientWallet = inv.ClientWallet.Ptr()
		m.Items = inv.Items
		m.Subtotal = &inv.Subtotal
		m.TaxRate = &inv.TaxRate
		m.Tax = &inv.Tax
		m.Discount = &inv.Discount
		m.ExpirationDate = &expiration
		m.Terms = inv.Terms.Ptr()
		m.IsVisible = &inv.IsVisible
	}
	if p := o.Payroll; p != nil {
		paymentDate := p.PaymentDate
		m.PayrollType = &p.PayrollType
		m.PaymentCycle = &p.PaymentCycle
		m.Recipients = p.Recipients
		m.GrossPay = &p.GrossPay
		m.NetPay = &p.NetPay
		m.PaymentDate = &paymentDate
	}
	return m
}

func orderToEntity(m *models.Order) *entities.Order {
	o := &entities.Order{
		ID:        m.ID,
		OrderNo:   m.OrderNo,
		Owner:     m.Owner,
		Type:      entities.OrderType(m.Type),
		Status:    entities.OrderStatus(m.Status),
		Total:     m.Total,
		Currency:  m.Currency,
		Payments:  m.Payments,
		Notes:     null.StringFromPtr(m.Notes),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		PaidAt:    m.PaidAt,
	}
	switch o.Type {
	case entities.OrderTypeInvoice:
		inv := &entities.InvoiceDetails{
			ClientEmail:  null.StringFromPtr(m.ClientEmail),
			ClientWallet: null.StringFromPtr(m.ClientWallet),
			Items:        m.Items,
			Terms:        null.StringFromPtr(m.Terms),
		}
		if m.ClientName != nil {
			inv.ClientName = *m.ClientName
		}
		if m.Subtotal != nil {
			inv.Subtotal = *m.Subtotal
		}
		if m.TaxRate != nil {
			inv.TaxRate = *m.TaxRate
		}
		if m.Tax != nil {
			inv.Tax = *m.Tax
		}
		if m.Discount != nil {
			inv.Discount = *m.Discount
		}
		if m.ExpirationDate != nil {
			inv.ExpirationDate = *m.ExpirationDate
		}
		if m.IsVisible != nil {
			inv.IsVisible = *m.IsVisible
		}
		o.Invoice = inv
	case entities.OrderTypePayroll:
		p := &entities.PayrollDetails{
			Recipients: m.Recipients,
		}
		if m.PayrollType != nil {
			p.PayrollType = *m.PayrollType
		}
		if m.PaymentCycle != nil {
			p.PaymentCycle = *m.PaymentCycle
		}
		if m.GrossPay != nil {
			p.GrossPay = *m.GrossPay
		}
		if m.NetPay != nil {
			p.NetPay = *m.NetPay
		}
		if m.PaymentDate != nil {
			p.PaymentDate = *m.PaymentDate
		}
		o.Payroll = p
	}
	return o
}
