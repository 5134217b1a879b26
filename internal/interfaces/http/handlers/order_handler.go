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

type OrderService interface {
	CreateInvoice(ctx context.Context, caller *entities.User, input *entities.CreateInvoiceInput) (*entities.Order, error)
	CreatePayroll(ctx context.Context, caller *entities.User, input *entities.CreatePayrollInput) (*entities.Order, error)
	List(ctx context.Context, caller *entities.User, filter entities.OrderFilter, limit, offset int) ([]*entities.Order, int64, error)
	Get(ctx context.Context, caller *entities.User, orderNo string) (*entities.Order, error)
	Update(ctx context.Context, caller *entities.User, orderNo string, input *entities.UpdateOrderInput) (*entities.Order, error)
	Delete(ctx context.Context, caller *entities.User, orderNo string) error
	MarkPaid(ctx context.Context, caller *entities.User, orderNo string) (*entities.Order, error)
}

// OrderHandler handles invoice and payroll order endpoints
type OrderHandler struct {
	orderUsecase OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase OrderService) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

// CreateInvoice creates an invoice order
// POST /api/v1/orders/invoice
func (h *OrderHandler) CreateInvoice(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderUsecase.CreateInvoice(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

// CreatePayroll creates a payroll order
// POST /api/v1/orders/payroll
func (h *OrderHandler) CreatePayroll(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreatePayrollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderUsecase.CreatePayroll(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

// ListOrders lists the caller's orders, or all orders for admins
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	filter := entities.OrderFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Owner:  c.Query("owner"),
	}

	orders, total, err := h.orderUsecase.List(c.Request.Context(), caller, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, gin.H{"orders": orders}, utils.CalculateMeta(total, params.Page, params.Limit))
}

// GetOrder gets an order by its order number
// GET /api/v1/orders/:orderNo
func (h *OrderHandler) GetOrder(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	order, err := h.orderUsecase.Get(c.Request.Context(), caller, c.Param("orderNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// UpdateOrder applies a partial order update
// PUT /api/v1/orders/:orderNo
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderUsecase.Update(c.Request.Context(), caller, c.Param("orderNo"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// DeleteOrder removes an unpaid order
// DELETE /api/v1/orders/:orderNo
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	if err := h.orderUsecase.Delete(c.Request.Context(), caller, c.Param("orderNo")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "order deleted"})
}

// MarkOrderPaid settles an order without an on-chain payment record
// POST /api/v1/orders/:orderNo/pay
func (h *OrderHandler) MarkOrderPaid(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	order, err := h.orderUsecase.MarkPaid(c.Request.Context(), caller, c.Param("orderNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}
