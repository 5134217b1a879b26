// Package finance computes derived monetary values for orders. All functions
// are pure and deterministic; stored totals are never input, always output.
// Results are rounded half-up to 2 decimal places.
package finance

import (
	"github.com/shopspring/decimal"
	"paymint.backend/internal/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// InvoiceTotals holds the derived amounts of an invoice.
type InvoiceTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// PayrollTotals holds the derived amounts of a payroll batch.
type PayrollTotals struct {
	GrossPay decimal.Decimal
	NetPay   decimal.Decimal
}

// ComputeInvoiceTotals derives subtotal, tax, and total from line items and a
// percentage tax rate. An empty item list yields all zeros.
//
//	subtotal = sum(price * quantity)
//	tax      = subtotal * taxRate / 100
//	total    = subtotal + tax
func ComputeInvoiceTotals(items []entities.Item, taxRate decimal.Decimal) InvoiceTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := decimal.Zero
	if !taxRate.IsZero() {
		tax = subtotal.Mul(taxRate).Div(hundred)
	}

	return InvoiceTotals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Total:    subtotal.Add(tax).Round(2),
	}
}

// ComputeRecipientNetPay derives gross and net pay from payroll recipients.
// An empty recipient list yields zeros.
//
//	grossPay = sum(amount)
//	netPay   = sum(amount + bonus - deduction)
func ComputeRecipientNetPay(recipients []entities.Recipient) PayrollTotals {
	gross := decimal.Zero
	net := decimal.Zero
	for _, r := range recipients {
		gross = gross.Add(r.Amount)
		net = net.Add(r.Amount).Add(r.Bonus).Sub(r.Deduction)
	}

	return PayrollTotals{
		GrossPay: gross.Round(2),
		NetPay:   net.Round(2),
	}
}
