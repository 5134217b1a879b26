package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"paymint.backend/internal/domain/entities"
)

// Order persists both variants in one row; the variant-specific line data
// lives in JSON columns the way the original document kept embedded arrays.
type Order struct {
	ID       uuid.UUID                 `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderNo  string                    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Owner    uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Type     string                    `gorm:"type:varchar(20);not null"`
	Status   string                    `gorm:"type:varchar(20);not null;index"`
	Total    decimal.Decimal           `gorm:"type:decimal(20,2);not null"`
	Currency string                    `gorm:"type:varchar(10);not null;default:'USD'"`
	Payments []entities.PaymentDetails `gorm:"serializer:json"`
	Notes    *string                   `gorm:"type:text"`

	// Invoice fields
	ClientName     *string              `gorm:"type:varchar(255)"`
	ClientEmail    *string              `gorm:"type:varchar(255)"`
	ClientWallet   *string              `gorm:"type:varchar(42)"`
	Items          []entities.Item      `gorm:"serializer:json"`
	Subtotal       *decimal.Decimal     `gorm:"type:decimal(20,2)"`
	TaxRate        *decimal.Decimal     `gorm:"type:decimal(10,4)"`
	Tax            *decimal.Decimal     `gorm:"type:decimal(20,2)"`
	Discount       *decimal.Decimal     `gorm:"type:decimal(20,2)"`
	ExpirationDate *time.Time
	Terms          *string `gorm:"type:text"`
	IsVisible      *bool

	// Payroll fields
	PayrollType  *string              `gorm:"type:varchar(50)"`
	PaymentCycle *string              `gorm:"type:varchar(50)"`
	Recipients   []entities.Recipient `gorm:"serializer:json"`
	GrossPay     *decimal.Decimal     `gorm:"type:decimal(20,2)"`
	NetPay       *decimal.Decimal     `gorm:"type:decimal(20,2)"`
	PaymentDate  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	PaidAt    *time.Time
}
