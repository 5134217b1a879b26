package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/interfaces/http/middleware"
	"paymint.backend/internal/interfaces/http/response"
	"paymint.backend/pkg/utils"
)

type UserService interface {
	Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.User, error)
	List(ctx context.Context, caller *entities.User, filter entities.UserFilter, limit, offset int) ([]*entities.User, int64, error)
	Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error)
	Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error
}

// UserHandler handles user profile endpoints
type UserHandler struct {
	userUsecase UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase UserService) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// GetUser gets a user by ID
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	user, err := h.userUsecase.Get(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ListUsers lists users; admin only
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	filter := entities.UserFilter{
		Name:          c.Query("name"),
		WalletAddress: c.Query("wallet_address"),
		Status:        c.Query("status"),
	}

	users, total, err := h.userUsecase.List(c.Request.Context(), caller, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, gin.H{"users": users}, utils.CalculateMeta(total, params.Page, params.Limit))
}

// UpdateUser applies a partial profile update
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userUsecase.Update(c.Request.Context(), caller, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user account; admin only
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	if err := h.userUsecase.Delete(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "user deleted"})
}
