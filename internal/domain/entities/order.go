package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// OrderType discriminates the two order variants
type OrderType string

const (
	OrderTypeInvoice OrderType = "invoice"
	OrderTypePayroll OrderType = "payroll"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusPaid          OrderStatus = "paid"
	OrderStatusCancelled     OrderStatus = "cancelled"
	OrderStatusExpired       OrderStatus = "expired"
	OrderStatusPartiallyPaid OrderStatus = "partially_paid"
)

// ValidOrderStatus reports whether s is a member of the order status enum.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusExpired, OrderStatusPartiallyPaid:
		return true
	}
	return false
}

// Item is an invoice line item
type Item struct {
	Title       string          `json:"title"`
	Description null.String     `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	ManageStock bool            `json:"manageStock"`
	Stock       *int            `json:"stock,omitempty"`
	ItemID      null.String     `json:"itemId,omitempty"`
	Unit        null.String     `json:"unit,omitempty"`
}

// Recipient is a payroll payee
type Recipient struct {
	Wallet     string          `json:"wallet"`
	Amount     decimal.Decimal `json:"amount"`
	Bonus      decimal.Decimal `json:"bonus"`
	Deduction  decimal.Decimal `json:"deduction"`
	Email      null.String     `json:"email,omitempty"`
	Name       null.String     `json:"name,omitempty"`
	Role       null.String     `json:"role,omitempty"`
	Department null.String     `json:"department,omitempty"`
	Notes      null.String     `json:"notes,omitempty"`
}

// PaymentDetails is a payment snapshot embedded on an order. PaymentNo keys
// the snapshot so re-running a settlement never duplicates it.
type PaymentDetails struct {
	PaymentNo     string           `json:"paymentNo"`
	TxHash        null.String      `json:"txHash,omitempty"`
	PaymentMethod null.String      `json:"paymentMethod,omitempty"`
	TokenAddress  null.String      `json:"tokenAddress,omitempty"`
	PaymentDate   *time.Time       `json:"paymentDate,omitempty"`
	ConfirmedDate *time.Time       `json:"confirmedDate,omitempty"`
	AmountPaid    *decimal.Decimal `json:"amountPaid,omitempty"`
	Status        string           `json:"status"`
	Notes         null.String      `json:"notes,omitempty"`
}

// InvoiceDetails holds the invoice-specific fields of an order. TaxRate is
// the percentage applied to the subtotal, Tax the derived amount.
type InvoiceDetails struct {
	ClientName     string          `json:"clientName"`
	ClientEmail    null.String     `json:"clientEmail,omitempty"`
	ClientWallet   null.String     `json:"clientWallet,omitempty"`
	Items          []Item          `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	Tax            decimal.Decimal `json:"tax"`
	Discount       decimal.Decimal `json:"discount"`
	ExpirationDate time.Time       `json:"expirationDate"`
	Terms          null.String     `json:"terms,omitempty"`
	IsVisible      bool            `json:"isVisible"`
}

// PayrollDetails holds the payroll-specific fields of an order
type PayrollDetails struct {
	PayrollType  string          `json:"payrollType"`
	PaymentCycle string          `json:"paymentCycle"`
	Recipients   []Recipient     `json:"recipients"`
	GrossPay     decimal.Decimal `json:"grossPay"`
	NetPay       decimal.Decimal `json:"netPay"`
	PaymentDate  time.Time       `json:"paymentDate"`
}

// Order is an invoice or payroll batch owned by a user. Exactly one of
// Invoice or Payroll is set, matching Type. Total is always derived from the
// variant's line data, never taken from the caller.
type Order struct {
	ID        uuid.UUID        `json:"id"`
	OrderNo   string           `json:"orderNo"`
	Owner     uuid.UUID        `json:"owner"`
	Type      OrderType        `json:"type"`
	Status    OrderStatus      `json:"status"`
	Total     decimal.Decimal  `json:"total"`
	Currency  string           `json:"currency"`
	Payments  []PaymentDetails `json:"payments"`
	Notes     null.String      `json:"notes,omitempty"`
	Invoice   *InvoiceDetails  `json:"invoice,omitempty"`
	Payroll   *PayrollDetails  `json:"payroll,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	PaidAt    *time.Time       `json:"paid_at,omitempty"`
}

// CreateInvoiceInput represents input for creating an invoice order.
// Caller-supplied totals are ignored and recomputed server-side.
type CreateInvoiceInput struct {
	OrderNo        string          `json:"orderNo"`
	ClientName     string          `json:"clientName" binding:"required"`
	ClientEmail    string          `json:"clientEmail"`
	ClientWallet   string          `json:"clientWallet"`
	Items          []Item          `json:"items" binding:"required"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	Discount       decimal.Decimal `json:"discount"`
	ExpirationDate *time.Time      `json:"expirationDate"`
	Notes          string          `json:"notes"`
	Terms          string          `json:"terms"`
	IsVisible      *bool           `json:"isVisible"`
	Currency       string          `json:"currency"`
}

// CreatePayrollInput represents input for creating a payroll order
type CreatePayrollInput struct {
	OrderNo      string      `json:"orderNo"`
	PayrollType  string      `json:"payrollType" binding:"required"`
	PaymentCycle string      `json:"paymentCycle" binding:"required"`
	Recipients   []Recipient `json:"recipients" binding:"required"`
	Notes        string      `json:"notes"`
	Currency     string      `json:"currency"`
	PaymentDate  *time.Time  `json:"paymentDate"`
}

// UpdateOrderInput represents a partial order update; nil fields stay
// untouched. Touching items/tax rate/discount or recipients triggers a
// server-side total recomputation.
type UpdateOrderInput struct {
	Status         *OrderStatus     `json:"status"`
	Currency       *string          `json:"currency"`
	Notes          *string          `json:"notes"`
	ClientName     *string          `json:"clientName"`
	ClientEmail    *string          `json:"clientEmail"`
	ClientWallet   *string          `json:"clientWallet"`
	Items          []Item           `json:"items"`
	TaxRate        *decimal.Decimal `json:"taxRate"`
	Discount       *decimal.Decimal `json:"discount"`
	ExpirationDate *time.Time       `json:"expirationDate"`
	Terms          *string          `json:"terms"`
	IsVisible      *bool            `json:"isVisible"`
	PayrollType    *string          `json:"payrollType"`
	PaymentCycle   *string          `json:"paymentCycle"`
	Recipients     []Recipient      `json:"recipients"`
	PaymentDate    *time.Time       `json:"paymentDate"`
}

// OrderFilter narrows order list queries
type OrderFilter struct {
	Type   string
	Status string
	Owner  string
}
