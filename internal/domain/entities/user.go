package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserStatus represents user account status
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
)

// User represents a user entity. Wallet-only accounts carry no password hash.
type User struct {
	ID                   uuid.UUID   `json:"id"`
	Username             string      `json:"username"`
	Email                string      `json:"email"`
	WalletAddress        string      `json:"wallet_address"`
	Name                 null.String `json:"name,omitempty"`
	Image                null.String `json:"image,omitempty"`
	Twitter              null.String `json:"twitter,omitempty"`
	Website              null.String `json:"website,omitempty"`
	IsAdmin              bool        `json:"is_admin"`
	Status               UserStatus  `json:"status"`
	PasswordHash         string      `json:"-"`
	EmailVerified        bool        `json:"email_verified"`
	VerificationToken    null.String `json:"-"`
	ResetPasswordToken   null.String `json:"-"`
	ResetPasswordExpires *time.Time  `json:"-"`
	Nonce                null.String `json:"-"`
	LastLogin            *time.Time  `json:"last_login,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// RegisterInput represents input for password signup
type RegisterInput struct {
	Username      string `json:"username" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	WalletAddress string `json:"wallet_address" binding:"required"`
	Name          string `json:"name"`
}

// LoginInput represents input for password login; Username accepts a
// username or an email address.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// WalletNonceInput requests a login nonce for a wallet address
type WalletNonceInput struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}

// WalletLoginInput represents a wallet signature login payload. Message is
// the full nonce message handed out by the nonce endpoint and Signature the
// EIP-191 personal-sign signature over it.
type WalletLoginInput struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

// UpdateUserInput represents a partial profile update; nil fields stay
// untouched.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Image    *string `json:"image"`
	Twitter  *string `json:"twitter"`
	Website  *string `json:"website"`
}

// ChangePasswordInput represents input for changing the caller's password
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// TokenResponse is the bearer token envelope returned by every login path
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// WalletNonceResponse carries the message the wallet must sign
type WalletNonceResponse struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// UserFilter narrows user list queries
type UserFilter struct {
	Name          string
	WalletAddress string
	Status        string
}
