package usecases

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"paymint.backend/internal/domain/authz"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/domain/repositories"
	"paymint.backend/internal/domain/validation"
	"paymint.backend/pkg/logger"
	"paymint.backend/pkg/utils"
)

// Notifier delivers transactional notifications. Mail is best effort; a
// failed send never fails the payment.
type Notifier interface {
	SendPaymentReceipt(ctx context.Context, recipientEmail string, payment *entities.Payment, order *entities.Order) error
}

// PaymentUsecase handles payment business logic, including the settlement
// cascade that marks the referenced order paid.
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	notifier    Notifier
	stock       StockAdjuster
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
	stock StockAdjuster,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		stock:       stock,
	}
}

// Create records a payment against an existing order. The referenced order
// must exist, be unpaid, and be visible to the caller. A payment created
// directly in completed status settles the order immediately.
func (u *PaymentUsecase) Create(ctx context.Context, caller *entities.User, input *entities.CreatePaymentInput) (*entities.Payment, error) {
	order, err := u.orderRepo.GetByOrderNo(ctx, input.OrderRef)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("referenced order does not exist")
		}
		return nil, err
	}
	if !authz.IsOwnerOrAdmin(caller, order.Owner) {
		return nil, domainerrors.ErrForbidden
	}

	chain, err := validation.NormalizeChain(input.Chain)
	if err != nil {
		return nil, err
	}
	sender, err := validation.NormalizeWalletAddress("sender", input.Sender, chain)
	if err != nil {
		return nil, err
	}
	recipient, err := validation.NormalizeWalletAddress("recipient", input.Recipient, chain)
	if err != nil {
		return nil, err
	}
	mintAddress, err := validation.NormalizeTokenAddress("mintAddress", input.MintAddress, chain)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("amount", input.Amount); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entities.PaymentStatusPending
	}
	if !entities.ValidPaymentStatus(status) {
		return nil, domainerrors.Invalid("status", "invalid payment status")
	}

	payment := &entities.Payment{
		PaymentNo:   input.PaymentNo,
		OrderRef:    order.OrderNo,
		Type:        order.Type,
		Amount:      input.Amount,
		Status:      status,
		Sender:      sender,
		Recipient:   recipient,
		Chain:       chain,
		Network:     input.Network,
		Currency:    strings.ToUpper(input.Currency),
		Transaction: input.Transaction,
	}
	if payment.PaymentNo == "" {
		payment.PaymentNo = utils.GeneratePaymentNo()
	}
	if payment.Network == "" {
		payment.Network = "mainnet"
	}
	if payment.Currency == "" {
		payment.Currency = validation.DefaultCurrencies[chain]
	}
	if mintAddress != "" {
		payment.MintAddress.SetValid(mintAddress)
	}
	if input.Comments != "" {
		payment.Comments.SetValid(input.Comments)
	}
	if payment.Transaction != nil && payment.Transaction.TxHash != "" {
		txHash, err := validation.NormalizeTxHash("transaction.txHash", payment.Transaction.TxHash)
		if err != nil {
			return nil, err
		}
		payment.Transaction.TxHash = txHash
	}
	if status == entities.PaymentStatusCompleted {
		now := time.Now().UTC()
		payment.CompletedAt = &now
	}

	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		if err == domainerrors.ErrAlreadyExists {
			return nil, domainerrors.Conflict("payment number already exists", err)
		}
		return nil, err
	}

	logger.Info(ctx, "payment created",
		zap.String("payment_no", payment.PaymentNo),
		zap.String("order_no", order.OrderNo),
		zap.String("chain", chain))

	if payment.Status == entities.PaymentStatusCompleted {
		u.settleOrder(ctx, payment, order)
	}

	return payment, nil
}

// List lists payments. Non-admin callers only see payments against their own
// orders.
func (u *PaymentUsecase) List(ctx context.Context, caller *entities.User, filter entities.PaymentFilter, limit, offset int) ([]*entities.Payment, int64, error) {
	var orderRefs []string
	if !authz.IsAdmin(caller) {
		refs, err := u.orderRepo.ListOrderNosByOwner(ctx, caller.ID.String())
		if err != nil {
			return nil, 0, err
		}
		if refs == nil {
			refs = []string{}
		}
		orderRefs = refs
	}
	return u.paymentRepo.List(ctx, filter, orderRefs, limit, offset)
}

// Get returns a payment; visibility follows the referenced order's owner
func (u *PaymentUsecase) Get(ctx context.Context, caller *entities.User, paymentNo string) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByPaymentNo(ctx, paymentNo)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, caller, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Update applies a partial payment update. Completed payments only accept
// comment and refund-hash changes; a transition into completed status
// settles the referenced order.
func (u *PaymentUsecase) Update(ctx context.Context, caller *entities.User, paymentNo string, input *entities.UpdatePaymentInput) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByPaymentNo(ctx, paymentNo)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, caller, payment); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	completing := false

	if input.Status != nil {
		if !entities.ValidPaymentStatus(*input.Status) {
			return nil, domainerrors.Invalid("status", "invalid payment status")
		}
		if payment.Status == entities.PaymentStatusCompleted && *input.Status != entities.PaymentStatusCompleted {
			return nil, domainerrors.Conflict("completed payments cannot change status", domainerrors.ErrPaymentCompleted)
		}
		if *input.Status == entities.PaymentStatusCompleted && payment.Status != entities.PaymentStatusCompleted {
			completing = true
			completedAt := time.Now().UTC()
			if input.CompletedAt != nil {
				completedAt = *input.CompletedAt
			}
			updates["completed_at"] = completedAt
		}
		updates["status"] = string(*input.Status)
	}
	if input.Comments != nil {
		updates["comments"] = *input.Comments
	}
	if input.Transaction != nil {
		if input.Transaction.TxHash != "" {
			txHash, err := validation.NormalizeTxHash("transaction.txHash", input.Transaction.TxHash)
			if err != nil {
				return nil, err
			}
			input.Transaction.TxHash = txHash
		}
		updates["transaction"] = input.Transaction
	}
	if input.RefundTxHash != nil {
		refundHash, err := validation.NormalizeTxHash("refundTxHash", *input.RefundTxHash)
		if err != nil {
			return nil, err
		}
		updates["refund_tx_hash"] = refundHash
	}

	if len(updates) > 0 {
		if err := u.paymentRepo.Update(ctx, paymentNo, updates); err != nil {
			return nil, err
		}
	}

	payment, err = u.paymentRepo.GetByPaymentNo(ctx, paymentNo)
	if err != nil {
		return nil, err
	}

	if completing {
		order, err := u.orderRepo.GetByOrderNo(ctx, payment.OrderRef)
		if err != nil {
			logger.Error(ctx, "completed payment references missing order",
				zap.String("payment_no", paymentNo),
				zap.String("order_no", payment.OrderRef),
				zap.Error(err))
		} else {
			u.settleOrder(ctx, payment, order)
		}
	}

	return payment, nil
}

// Delete removes a payment record; admin only. Completed payments are part
// of the settlement audit trail and cannot be deleted.
func (u *PaymentUsecase) Delete(ctx context.Context, caller *entities.User, paymentNo string) error {
	if !authz.IsAdmin(caller) {
		return domainerrors.ErrForbidden
	}
	payment, err := u.paymentRepo.GetByPaymentNo(ctx, paymentNo)
	if err != nil {
		return err
	}
	if payment.Status == entities.PaymentStatusCompleted {
		return domainerrors.Conflict("completed payments cannot be deleted", domainerrors.ErrPaymentCompleted)
	}
	return u.paymentRepo.Delete(ctx, paymentNo)
}

func (u *PaymentUsecase) authorize(ctx context.Context, caller *entities.User, payment *entities.Payment) error {
	if authz.IsAdmin(caller) {
		return nil
	}
	order, err := u.orderRepo.GetByOrderNo(ctx, payment.OrderRef)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return domainerrors.ErrForbidden
		}
		return err
	}
	if !authz.IsOwnerOrAdmin(caller, order.Owner) {
		return domainerrors.ErrForbidden
	}
	return nil
}

// settleOrder propagates a completed payment onto its order: the payment
// snapshot is appended, the order flips to paid, stock is adjusted, and for
// invoice orders with a client name a receipt is mailed. Each step is
// idempotent, so a retried settlement converges instead of duplicating.
func (u *PaymentUsecase) settleOrder(ctx context.Context, payment *entities.Payment, order *entities.Order) {
	updates := make(map[string]interface{})

	if !hasPaymentSnapshot(order.Payments, payment.PaymentNo) {
		updates["payments"] = append(order.Payments, paymentSnapshot(payment))
	}
	if order.Status != entities.OrderStatusPaid {
		updates["status"] = string(entities.OrderStatusPaid)
		updates["paid_at"] = time.Now().UTC()
	}

	if len(updates) > 0 {
		if err := u.orderRepo.Update(ctx, order.OrderNo, updates); err != nil {
			logger.Error(ctx, "failed to settle order after payment",
				zap.String("payment_no", payment.PaymentNo),
				zap.String("order_no", order.OrderNo),
				zap.Error(err))
			return
		}
	}

	if order.Status != entities.OrderStatusPaid {
		order.Status = entities.OrderStatusPaid
		u.stock.ReduceStock(ctx, order)
		u.sendReceipt(ctx, payment, order)
	}

	logger.Info(ctx, "order settled by payment",
		zap.String("payment_no", payment.PaymentNo),
		zap.String("order_no", order.OrderNo))
}

// sendReceipt mails a receipt for invoice orders that carry a client name.
// The client's own email wins over the order owner's.
func (u *PaymentUsecase) sendReceipt(ctx context.Context, payment *entities.Payment, order *entities.Order) {
	if order.Type != entities.OrderTypeInvoice || order.Invoice == nil || order.Invoice.ClientName == "" {
		return
	}

	email := order.Invoice.ClientEmail.String
	if email == "" {
		owner, err := u.userRepo.GetByID(ctx, order.Owner)
		if err != nil || owner.Email == "" {
			return
		}
		email = owner.Email
	}

	if err := u.notifier.SendPaymentReceipt(ctx, email, payment, order); err != nil {
		logger.Warn(ctx, "failed to send payment receipt",
			zap.String("payment_no", payment.PaymentNo),
			zap.Error(err))
	}
}

func hasPaymentSnapshot(snapshots []entities.PaymentDetails, paymentNo string) bool {
	for _, s := range snapshots {
		if s.PaymentNo == paymentNo {
			return true
		}
	}
	return false
}

func paymentSnapshot(payment *entities.Payment) entities.PaymentDetails {
	amount := payment.Amount
	createdAt := payment.CreatedAt
	snapshot := entities.PaymentDetails{
		PaymentNo:     payment.PaymentNo,
		AmountPaid:    &amount,
		Status:        string(payment.Status),
		PaymentDate:   &createdAt,
		ConfirmedDate: payment.CompletedAt,
		TokenAddress:  payment.MintAddress,
	}
	snapshot.PaymentMethod.SetValid(payment.Chain)
	if payment.Transaction != nil && payment.Transaction.TxHash != "" {
		snapshot.TxHash.SetValid(payment.Transaction.TxHash)
	}
	return snapshot
}
