package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/interfaces/http/handlers"
)

func authRouter(svc *MockAuthService, caller *entities.User) *gin.Engine {
	h := handlers.NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/wallet/nonce", h.WalletNonce)
	r.POST("/auth/wallet/login", h.WalletLogin)
	r.GET("/auth/me", injectUser(caller), h.Me)
	r.POST("/auth/change-password", injectUser(caller), h.ChangePassword)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthService)
	user := &entities.User{ID: uuid.New(), Username: "grubbly"}
	token := &entities.TokenResponse{AccessToken: "token-abc", TokenType: "bearer", ExpiresIn: 3600}
	svc.On("Register", mock.Anything, mock.AnythingOfType("*entities.RegisterInput")).Return(user, token, nil)

	w := httptest.NewRecorder()
	authRouter(svc, nil).ServeHTTP(w, jsonRequest(t, http.MethodPost, "/auth/register", gin.H{
		"username":       "grubbly",
		"email":          "grubbly@example.com",
		"password":       "Sup3rSecretPass",
		"wallet_address": "0x1111111111111111111111111111111111111111",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "grubbly")
	assert.Contains(t, w.Body.String(), "token-abc")
	svc.AssertExpectations(t)
}

func TestAuthHandler_RegisterBadBody(t *testing.T) {
	svc := new(MockAuthService)

	w := httptest.NewRecorder()
	authRouter(svc, nil).ServeHTTP(w, jsonRequest(t, http.MethodPost, "/auth/register", gin.H{
		"username": "grubbly",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, mock.AnythingOfType("*entities.LoginInput")).Return(&entities.TokenResponse{
		AccessToken: "token-abc",
		TokenType:   "bearer",
		ExpiresIn:   3600,
	}, nil)

	w := httptest.NewRecorder()
	authRouter(svc, nil).ServeHTTP(w, jsonRequest(t, http.MethodPost, "/auth/login", gin.H{
		"username": "grubbly",
		"password": "Sup3rSecretPass",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token-abc")
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	authRouter(svc, nil).ServeHTTP(w, jsonRequest(t, http.MethodPost, "/auth/login", gin.H{
		"username": "grubbly",
		"password": "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_WalletFlow(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("WalletNonce", mock.Anything, mock.AnythingOfType("*entities.WalletNonceInput")).Return(&entities.WalletNonceResponse{
		Nonce:   "deadbeefcafe",
		Message: "Sign this message to log in to Paymint.\n\nNonce: deadbeefcafe",
	}, nil)
	svc.On("WalletLogin", mock.Anything, mock.AnythingOfType("*entities.WalletLoginInput")).Return(&entities.TokenResponse{
		AccessToken: "token-wallet",
		TokenType:   "bearer",
		ExpiresIn:   3600,
	}, nil)
	router := authRouter(svc, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/auth/wallet/nonce", gin.H{
		"wallet_address": "0x1111111111111111111111111111111111111111",
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deadbeefcafe")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/auth/wallet/login", gin.H{
		"wallet_address": "0x1111111111111111111111111111111111111111",
		"message":        "Sign this message to log in to Paymint.\n\nNonce: deadbeefcafe",
		"signature":      "0xsig",
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token-wallet")
}

func TestAuthHandler_Me(t *testing.T) {
	svc := new(MockAuthService)
	caller := &entities.User{ID: uuid.New(), Username: "grubbly"}
	svc.On("GetMe", mock.Anything, caller.ID).Return(caller, nil)

	w := httptest.NewRecorder()
	authRouter(svc, caller).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "grubbly")
}

func TestAuthHandler_MeUnauthenticated(t *testing.T) {
	svc := new(MockAuthService)

	w := httptest.NewRecorder()
	authRouter(svc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	svc := new(MockAuthService)
	caller := &entities.User{ID: uuid.New(), Username: "grubbly"}
	svc.On("ChangePassword", mock.Anything, caller.ID, mock.AnythingOfType("*entities.ChangePasswordInput")).Return(nil)

	w := httptest.NewRecorder()
	authRouter(svc, caller).ServeHTTP(w, jsonRequest(t, http.MethodPost, "/auth/change-password", gin.H{
		"current_password": "Sup3rSecretPass",
		"new_password":     "N3wSecretPass",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
