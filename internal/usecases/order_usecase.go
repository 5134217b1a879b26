package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"
	"paymint.backend/internal/domain/authz"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/domain/finance"
	"paymint.backend/internal/domain/repositories"
	"paymint.backend/internal/domain/validation"
	"paymint.backend/pkg/logger"
	"paymint.backend/pkg/utils"
)

// Defaults applied when the create payloads omit their date fields.
const (
	defaultInvoiceExpiry = 30 * 24 * time.Hour
	defaultPayrollLead   = 7 * 24 * time.Hour
)

// StockAdjuster records inventory decrements for paid invoices
type StockAdjuster interface {
	ReduceStock(ctx context.Context, order *entities.Order)
}

// OrderUsecase handles invoice and payroll order business logic
type OrderUsecase struct {
	orderRepo repositories.OrderRepository
	stock     StockAdjuster
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(orderRepo repositories.OrderRepository, stock StockAdjuster) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		stock:     stock,
	}
}

// CreateInvoice creates an invoice order owned by the caller. Subtotal, tax,
// and total are always recomputed from the line items.
func (u *OrderUsecase) CreateInvoice(ctx context.Context, caller *entities.User, input *entities.CreateInvoiceInput) (*entities.Order, error) {
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("taxRate", input.TaxRate); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("discount", input.Discount); err != nil {
		return nil, err
	}

	invoice := &entities.InvoiceDetails{
		ClientName: input.ClientName,
		Items:      input.Items,
		TaxRate:    input.TaxRate,
		Discount:   input.Discount,
		IsVisible:  true,
	}
	if input.ClientEmail != "" {
		invoice.ClientEmail.SetValid(input.ClientEmail)
	}
	if input.ClientWallet != "" {
		wallet, err := validation.NormalizeEVMAddress("clientWallet", input.ClientWallet)
		if err != nil {
			return nil, err
		}
		invoice.ClientWallet.SetValid(wallet)
	}
	if input.Terms != "" {
		invoice.Terms.SetValid(input.Terms)
	}
	if input.IsVisible != nil {
		invoice.IsVisible = *input.IsVisible
	}
	if input.ExpirationDate != nil {
		invoice.ExpirationDate = *input.ExpirationDate
	} else {
		invoice.ExpirationDate = time.Now().UTC().Add(defaultInvoiceExpiry)
	}

	totals := finance.ComputeInvoiceTotals(invoice.Items, invoice.TaxRate)
	invoice.Subtotal = totals.Subtotal
	invoice.Tax = totals.Tax
	total := totals.Total.Sub(invoice.Discount).Round(2)
	if total.IsNegative() {
		return nil, domainerrors.Invalid("discount", "discount cannot exceed the invoice total")
	}

	order := &entities.Order{
		OrderNo:  input.OrderNo,
		Owner:    caller.ID,
		Type:     entities.OrderTypeInvoice,
		Status:   entities.OrderStatusPending,
		Total:    total,
		Currency: input.Currency,
		Invoice:  invoice,
	}
	if order.OrderNo == "" {
		order.OrderNo = utils.GenerateOrderNo()
	}
	if order.Currency == "" {
		order.Currency = "USD"
	}
	if input.Notes != "" {
		order.Notes.SetValid(input.Notes)
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		if err == domainerrors.ErrAlreadyExists {
			return nil, domainerrors.Conflict("order number already exists", err)
		}
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		zap.String("order_no", order.OrderNo),
		zap.String("owner", order.Owner.String()))
	return order, nil
}

// CreatePayroll creates a payroll order owned by the caller. Gross and net
// pay are always recomputed from the recipients.
func (u *OrderUsecase) CreatePayroll(ctx context.Context, caller *entities.User, input *entities.CreatePayrollInput) (*entities.Order, error) {
	recipients, err := validateRecipients(input.Recipients)
	if err != nil {
		return nil, err
	}

	payroll := &entities.PayrollDetails{
		PayrollType:  input.PayrollType,
		PaymentCycle: input.PaymentCycle,
		Recipients:   recipients,
	}
	if input.PaymentDate != nil {
		payroll.PaymentDate = *input.PaymentDate
	} else {
		payroll.PaymentDate = time.Now().UTC().Add(defaultPayrollLead)
	}

	totals := finance.ComputeRecipientNetPay(payroll.Recipients)
	payroll.GrossPay = totals.GrossPay
	payroll.NetPay = totals.NetPay

	order := &entities.Order{
		OrderNo:  input.OrderNo,
		Owner:    caller.ID,
		Type:     entities.OrderTypePayroll,
		Status:   entities.OrderStatusPending,
		Total:    totals.NetPay,
		Currency: input.Currency,
		Payroll:  payroll,
	}
	if order.OrderNo == "" {
		order.OrderNo = utils.GenerateOrderNo()
	}
	if order.Currency == "" {
		order.Currency = "USD"
	}
	if input.Notes != "" {
		order.Notes.SetValid(input.Notes)
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		if err == domainerrors.ErrAlreadyExists {
			return nil, domainerrors.Conflict("order number already exists", err)
		}
		return nil, err
	}

	logger.Info(ctx, "payroll created",
		zap.String("order_no", order.OrderNo),
		zap.String("owner", order.Owner.String()))
	return order, nil
}

// List lists orders. Non-admin callers only ever see their own orders.
func (u *OrderUsecase) List(ctx context.Context, caller *entities.User, filter entities.OrderFilter, limit, offset int) ([]*entities.Order, int64, error) {
	if !authz.IsAdmin(caller) {
		filter.Owner = caller.ID.String()
	}
	return u.orderRepo.List(ctx, filter, limit, offset)
}

// Get returns a single order for its owner or an admin
func (u *OrderUsecase) Get(ctx context.Context, caller *entities.User, orderNo string) (*entities.Order, error) {
	order, err := u.orderRepo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwnerOrAdmin(caller, order.Owner) {
		return nil, domainerrors.ErrForbidden
	}
	return order, nil
}

// Update applies a partial update. Paid orders are immutable; touching the
// financial inputs of either variant recomputes the stored totals.
func (u *OrderUsecase) Update(ctx context.Context, caller *entities.User, orderNo string, input *entities.UpdateOrderInput) (*entities.Order, error) {
	order, err := u.orderRepo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwnerOrAdmin(caller, order.Owner) {
		return nil, domainerrors.ErrForbidden
	}
	if order.Status == entities.OrderStatusPaid {
		return nil, domainerrors.Conflict("paid orders cannot be modified", domainerrors.ErrOrderPaid)
	}

	updates := make(map[string]interface{})
	if input.Status != nil {
		if !entities.ValidOrderStatus(*input.Status) {
			return nil, domainerrors.Invalid("status", "invalid order status")
		}
		updates["status"] = string(*input.Status)
		if *input.Status == entities.OrderStatusPaid {
			updates["paid_at"] = time.Now().UTC()
		}
	}
	if input.Currency != nil {
		updates["currency"] = *input.Currency
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	switch order.Type {
	case entities.OrderTypeInvoice:
		if err := u.applyInvoiceUpdates(order, input, updates); err != nil {
			return nil, err
		}
	case entities.OrderTypePayroll:
		if err := u.applyPayrollUpdates(order, input, updates); err != nil {
			return nil, err
		}
	}

	if len(updates) > 0 {
		if err := u.orderRepo.Update(ctx, orderNo, updates); err != nil {
			return nil, err
		}
	}

	return u.orderRepo.GetByOrderNo(ctx, orderNo)
}

// Delete removes an order for its owner or an admin. Paid orders are kept
// for the payment audit trail.
func (u *OrderUsecase) Delete(ctx context.Context, caller *entities.User, orderNo string) error {
	order, err := u.orderRepo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return err
	}
	if !authz.IsOwnerOrAdmin(caller, order.Owner) {
		return domainerrors.ErrForbidden
	}
	if order.Status == entities.OrderStatusPaid {
		return domainerrors.Conflict("paid orders cannot be deleted", domainerrors.ErrOrderPaid)
	}
	return u.orderRepo.Delete(ctx, orderNo)
}

// MarkPaid settles an order directly, without an on-chain payment record.
// Marking an already-paid order is a conflict.
func (u *OrderUsecase) MarkPaid(ctx context.Context, caller *entities.User, orderNo string) (*entities.Order, error) {
	order, err := u.orderRepo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwnerOrAdmin(caller, order.Owner) {
		return nil, domainerrors.ErrForbidden
	}
	if order.Status == entities.OrderStatusPaid {
		return nil, domainerrors.Conflict("order is already paid", domainerrors.ErrOrderPaid)
	}

	now := time.Now().UTC()
	err = u.orderRepo.Update(ctx, orderNo, map[string]interface{}{
		"status":  string(entities.OrderStatusPaid),
		"paid_at": now,
	})
	if err != nil {
		return nil, err
	}

	order.Status = entities.OrderStatusPaid
	order.PaidAt = &now
	u.stock.ReduceStock(ctx, order)

	logger.Info(ctx, "order marked paid", zap.String("order_no", orderNo))
	return order, nil
}

func (u *OrderUsecase) applyInvoiceUpdates(order *entities.Order, input *entities.UpdateOrderInput, updates map[string]interface{}) error {
	if input.ClientName != nil {
		updates["client_name"] = *input.ClientName
	}
	if input.ClientEmail != nil {
		updates["client_email"] = *input.ClientEmail
	}
	if input.ClientWallet != nil {
		wallet, err := validation.NormalizeEVMAddress("clientWallet", *input.ClientWallet)
		if err != nil {
			return err
		}
		updates["client_wallet"] = wallet
	}
	if input.ExpirationDate != nil {
		updates["expiration_date"] = *input.ExpirationDate
	}
	if input.Terms != nil {
		updates["terms"] = *input.Terms
	}
	if input.IsVisible != nil {
		updates["is_visible"] = *input.IsVisible
	}

	if input.Items == nil && input.TaxRate == nil && input.Discount == nil {
		return nil
	}

	items := order.Invoice.Items
	if input.Items != nil {
		if err := validateItems(input.Items); err != nil {
			return err
		}
		items = input.Items
		updates["items"] = items
	}
	taxRate := order.Invoice.TaxRate
	if input.TaxRate != nil {
		if err := validation.ValidateNonNegative("taxRate", *input.TaxRate); err != nil {
			return err
		}
		taxRate = *input.TaxRate
		updates["tax_rate"] = taxRate
	}
	discount := order.Invoice.Discount
	if input.Discount != nil {
		if err := validation.ValidateNonNegative("discount", *input.Discount); err != nil {
			return err
		}
		discount = *input.Discount
		updates["discount"] = discount
	}

	totals := finance.ComputeInvoiceTotals(items, taxRate)
	total := totals.Total.Sub(discount).Round(2)
	if total.IsNegative() {
		return domainerrors.Invalid("discount", "discount cannot exceed the invoice total")
	}
	updates["subtotal"] = totals.Subtotal
	updates["tax"] = totals.Tax
	updates["total"] = total
	return nil
}

func (u *OrderUsecase) applyPayrollUpdates(order *entities.Order, input *entities.UpdateOrderInput, updates map[string]interface{}) error {
	if input.PayrollType != nil {
		updates["payroll_type"] = *input.PayrollType
	}
	if input.PaymentCycle != nil {
		updates["payment_cycle"] = *input.PaymentCycle
	}
	if input.PaymentDate != nil {
		updates["payment_date"] = *input.PaymentDate
	}

	if input.Recipients == nil {
		return nil
	}

	recipients, err := validateRecipients(input.Recipients)
	if err != nil {
		return err
	}
	totals := finance.ComputeRecipientNetPay(recipients)
	updates["recipients"] = recipients
	updates["gross_pay"] = totals.GrossPay
	updates["net_pay"] = totals.NetPay
	updates["total"] = totals.NetPay
	return nil
}

func validateItems(items []entities.Item) error {
	if len(items) == 0 {
		return domainerrors.Invalid("items", "invoice must contain at least one item")
	}
	for _, item := range items {
		if item.Title == "" {
			return domainerrors.Invalid("items", "item title is required")
		}
		if item.Quantity < 0 {
			return domainerrors.Invalid("items", "item quantity cannot be negative")
		}
		if err := validation.ValidateNonNegative("items", item.Price); err != nil {
			return err
		}
		if err := validation.ValidateNonNegative("items", item.TaxRate); err != nil {
			return err
		}
		if item.Stock != nil && *item.Stock < 0 {
			return domainerrors.Invalid("items", "item stock cannot be negative")
		}
	}
	return nil
}

func validateRecipients(recipients []entities.Recipient) ([]entities.Recipient, error) {
	if len(recipients) == 0 {
		return nil, domainerrors.Invalid("recipients", "payroll must contain at least one recipient")
	}
	out := make([]entities.Recipient, len(recipients))
	for i, r := range recipients {
		wallet, err := validation.NormalizeEVMAddress("recipients", r.Wallet)
		if err != nil {
			return nil, err
		}
		if err := validation.ValidatePositive("recipients", r.Amount); err != nil {
			return nil, err
		}
		if err := validation.ValidateNonNegative("recipients", r.Bonus); err != nil {
			return nil, err
		}
		if err := validation.ValidateNonNegative("recipients", r.Deduction); err != nil {
			return nil, err
		}
		r.Wallet = wallet
		out[i] = r
	}
	return out, nil
}
