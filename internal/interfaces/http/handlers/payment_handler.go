package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/interfaces/http/middleware"
	"paymint.backend/internal/interfaces/http/response"
	"paymint.backend/pkg/utils"
)

type PaymentService interface {
	Create(ctx context.Context, caller *entities.User, input *entities.CreatePaymentInput) (*entities.Payment, error)
	List(ctx context.Context, caller *entities.User, filter entities.PaymentFilter, limit, offset int) ([]*entities.Payment, int64, error)
	Get(ctx context.Context, caller *entities.User, paymentNo string) (*entities.Payment, error)
	Update(ctx context.Context, caller *entities.User, paymentNo string, input *entities.UpdatePaymentInput) (*entities.Payment, error)
	Delete(ctx context.Context, caller *entities.User, paymentNo string) error
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// CreatePayment records a payment against an order
// POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentUsecase.Create(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// ListPayments lists payments visible to the caller
// GET /api/v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	filter := entities.PaymentFilter{
		OrderRef: c.Query("orderRef"),
		Status:   c.Query("status"),
		Chain:    c.Query("chain"),
	}

	payments, total, err := h.paymentUsecase.List(c.Request.Context(), caller, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, gin.H{"payments": payments}, utils.CalculateMeta(total, params.Page, params.Limit))
}

// GetPayment gets a payment by its payment number
// GET /api/v1/payments/:paymentNo
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	payment, err := h.paymentUsecase.Get(c.Request.Context(), caller, c.Param("paymentNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// UpdatePayment applies a partial payment update
// PUT /api/v1/payments/:paymentNo
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentUsecase.Update(c.Request.Context(), caller, c.Param("paymentNo"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// DeletePayment removes a payment record; admin only
// DELETE /api/v1/payments/:paymentNo
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	if err := h.paymentUsecase.Delete(c.Request.Context(), caller, c.Param("paymentNo")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "payment deleted"})
}
