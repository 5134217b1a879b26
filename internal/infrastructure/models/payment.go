package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"paymint.backend/internal/domain/entities"
)

type Payment struct {
	ID           uuid.UUID                  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PaymentNo    string                     `gorm:"type:varchar(20);uniqueIndex;not null"`
	OrderRef     string                     `gorm:"type:varchar(20);not null;index"`
	Type         string                     `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal            `gorm:"type:decimal(20,8);not null"`
	Status       string                     `gorm:"type:varchar(20);not null;index"`
	Sender       string                     `gorm:"type:varchar(255);not null"`
	Recipient    string                     `gorm:"type:varchar(255);not null"`
	MintAddress  *string                    `gorm:"type:varchar(255)"`
	Chain        string                     `gorm:"type:varchar(20);not null"`
	Network      string                     `gorm:"type:varchar(20);not null;default:'mainnet'"`
	Currency     string                     `gorm:"type:varchar(10);not null"`
	Comments     *string                    `gorm:"type:text"`
	Transaction  *entities.TransactionDetails `gorm:"serializer:json"`
	RefundTxHash *string                    `gorm:"type:varchar(255)"`
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
