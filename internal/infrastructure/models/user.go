package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Username             string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	WalletAddress        string    `gorm:"type:varchar(42);uniqueIndex;not null"`
	Name                 *string   `gorm:"type:varchar(100)"`
	Image                *string   `gorm:"type:varchar(500)"`
	Twitter              *string   `gorm:"type:varchar(100)"`
	Website              *string   `gorm:"type:varchar(255)"`
	IsAdmin              bool      `gorm:"not null;default:false"`
	Status               string    `gorm:"type:varchar(20);not null;default:'active'"`
	PasswordHash         *string   `gorm:"type:varchar(255)"`
	EmailVerified        bool      `gorm:"not null;default:false"`
	VerificationToken    *string   `gorm:"type:varchar(64)"`
	ResetPasswordToken   *string   `gorm:"type:varchar(64)"`
	ResetPasswordExpires *time.Time
	Nonce                *string `gorm:"type:varchar(64)"`
	LastLogin            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
