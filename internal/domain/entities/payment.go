package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

// ValidPaymentStatus reports whether s is a member of the payment status enum.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// TransactionDetails holds the on-chain facts of a settled payment
type TransactionDetails struct {
	TxHash         string           `json:"txHash"`
	BlockNumber    *int64           `json:"blockNumber,omitempty"`
	BlockTimestamp *time.Time       `json:"blockTimestamp,omitempty"`
	Confirmations  *int             `json:"confirmations,omitempty"`
	GasUsed        *int64           `json:"gasUsed,omitempty"`
	GasPrice       *decimal.Decimal `json:"gasPrice,omitempty"`
	FeeAmount      *decimal.Decimal `json:"feeAmount,omitempty"`
	FeeCurrency    string           `json:"feeCurrency,omitempty"`
}

// Payment records funds moved against a specific order on a specific chain.
// Ownership is resolved through the referenced order, not stored here.
type Payment struct {
	ID           uuid.UUID           `json:"id"`
	PaymentNo    string              `json:"paymentNo"`
	OrderRef     string              `json:"orderRef"`
	Type         OrderType           `json:"type"`
	Amount       decimal.Decimal     `json:"amount"`
	Status       PaymentStatus       `json:"status"`
	Sender       string              `json:"sender"`
	Recipient    string              `json:"recipient"`
	MintAddress  null.String         `json:"mintAddress,omitempty"`
	Chain        string              `json:"chain"`
	Network      string              `json:"network"`
	Currency     string              `json:"currency"`
	Comments     null.String         `json:"comments,omitempty"`
	Transaction  *TransactionDetails `json:"transaction,omitempty"`
	RefundTxHash null.String         `json:"refundTxHash,omitempty"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CreatePaymentInput represents input for creating a payment against an
// existing order.
type CreatePaymentInput struct {
	PaymentNo   string              `json:"paymentNo"`
	OrderRef    string              `json:"orderRef" binding:"required"`
	Amount      decimal.Decimal     `json:"amount" binding:"required"`
	Status      PaymentStatus       `json:"status"`
	Sender      string              `json:"sender" binding:"required"`
	Recipient   string              `json:"recipient" binding:"required"`
	MintAddress string              `json:"mintAddress"`
	Chain       string              `json:"chain" binding:"required"`
	Network     string              `json:"network"`
	Currency    string              `json:"currency"`
	Comments    string              `json:"comments"`
	Transaction *TransactionDetails `json:"transaction"`
}

// UpdatePaymentInput represents a partial payment update; nil fields stay
// untouched.
type UpdatePaymentInput struct {
	Status       *PaymentStatus      `json:"status"`
	Comments     *string             `json:"comments"`
	Transaction  *TransactionDetails `json:"transaction"`
	CompletedAt  *time.Time          `json:"completedAt"`
	RefundTxHash *string             `json:"refundTxHash"`
}

// PaymentFilter narrows payment list queries
type PaymentFilter struct {
	OrderRef string
	Status   string
	Chain    string
}
