package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/infrastructure/models"
	"paymint.backend/pkg/utils"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := paymentToModel(payment)
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	payment.ID = m.ID
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByPaymentNo gets a payment by its payment number
func (r *PaymentRepository) GetByPaymentNo(ctx context.Context, paymentNo string) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Where("payment_no = ?", paymentNo).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// List lists payments with filters, newest first. A non-nil orderRefs slice
// restricts results to those order numbers (owner scoping).
func (r *PaymentRepository) List(ctx context.Context, filter entities.PaymentFilter, orderRefs []string, limit, offset int) ([]*entities.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if filter.OrderRef != "" {
		query = query.Where("order_ref = ?", filter.OrderRef)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Chain != "" {
		query = query.Where("chain = ?", filter.Chain)
	}
	if orderRefs != nil {
		query = query.Where("order_ref IN ?", orderRefs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paymentModels []models.Payment
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*entities.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentToEntity(&paymentModels[i]))
	}
	return payments, total, nil
}

// Update applies a partial set of column updates to a payment
func (r *PaymentRepository) Update(ctx context.Context, paymentNo string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).Where("payment_no = ?", paymentNo).Updates(serializeJSONColumns(updates))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a payment
func (r *PaymentRepository) Delete(ctx context.Context, paymentNo string) error {
	result := r.db.WithContext(ctx).Where("payment_no = ?", paymentNo).Delete(&models.Payment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func paymentToModel(p *entities.Payment) *models.Payment {
	return &models.Payment{
		ID:           p.ID,
		PaymentNo:    p.PaymentNo,
		OrderRef:     p.OrderRef,
		Type:         string(p.Type),
		Amount:       p.Amount,
		Status:       string(p.Status),
		Sender:       p.Sender,
		Recipient:    p.Recipient,
		MintAddress:  p.MintAddress.Ptr(),
		Chain:        p.Chain,
		Network:      p.Network,
		Currency:     p.Currency,
		Comments:     p.Comments.Ptr(),
		Transaction:  p.Transaction,
		RefundTxHash: p.RefundTxHash.Ptr(),
		CompletedAt:  p.CompletedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func paymentToEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:           m.ID,
		PaymentNo:    m.PaymentNo,
		OrderRef:     m.OrderRef,
		Type:         entities.OrderType(m.Type),
		Amount:       m.Amount,
		Status:       entities.PaymentStatus(m.Status),
		Sender:       m.Sender,
		Recipient:    m.Recipient,
		MintAddress:  null.StringFromPtr(m.MintAddress),
		Chain:        m.Chain,
		Network:      m.Network,
		Currency:     m.Currency,
		Comments:     null.StringFromPtr(m.Comments),
		Transaction:  m.Transaction,
		RefundTxHash: null.StringFromPtr(m.RefundTxHash),
		CompletedAt:  m.CompletedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
