package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/interfaces/http/middleware"
	"paymint.backend/internal/interfaces/http/response"
)

type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, *entities.TokenResponse, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.TokenResponse, error)
	WalletNonce(ctx context.Context, input *entities.WalletNonceInput) (*entities.WalletNonceResponse, error)
	WalletLogin(ctx context.Context, input *entities.WalletLoginInput) (*entities.TokenResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Register creates a password-authenticated account
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login exchanges a username-or-email plus password for a bearer token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// WalletNonce issues a signing challenge for a wallet address
// POST /api/v1/auth/wallet/nonce
func (h *AuthHandler) WalletNonce(c *gin.Context) {
	var input entities.WalletNonceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	nonce, err := h.authUsecase.WalletNonce(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, nonce)
}

// WalletLogin exchanges a signed challenge for a bearer token
// POST /api/v1/auth/wallet/login
func (h *AuthHandler) WalletLogin(c *gin.Context) {
	var input entities.WalletLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authUsecase.WalletLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	user, err := h.authUsecase.GetMe(c.Request.Context(), caller.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword swaps the caller's password
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), caller.ID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}
