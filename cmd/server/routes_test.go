package main

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"paymint.backend/internal/interfaces/http/handlers"
)

func TestRegisterAPIV1Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	noopAuth := func(c *gin.Context) { c.Next() }
	registerAPIV1Routes(r, routeDeps{
		authHandler:    handlers.NewAuthHandler(nil),
		userHandler:    handlers.NewUserHandler(nil),
		orderHandler:   handlers.NewOrderHandler(nil),
		paymentHandler: handlers.NewPaymentHandler(nil),
		authMiddleware: noopAuth,
	})

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/wallet/nonce",
		"POST /api/v1/auth/wallet/login",
		"GET /api/v1/auth/me",
		"POST /api/v1/auth/change-password",
		"GET /api/v1/users",
		"GET /api/v1/users/:id",
		"PUT /api/v1/users/:id",
		"DELETE /api/v1/users/:id",
		"POST /api/v1/orders/invoice",
		"POST /api/v1/orders/payroll",
		"GET /api/v1/orders",
		"GET /api/v1/orders/:orderNo",
		"PUT /api/v1/orders/:orderNo",
		"DELETE /api/v1/orders/:orderNo",
		"POST /api/v1/orders/:orderNo/pay",
		"POST /api/v1/payments",
		"GET /api/v1/payments",
		"GET /api/v1/payments/:paymentNo",
		"PUT /api/v1/payments/:paymentNo",
		"DELETE /api/v1/payments/:paymentNo",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route not registered: %s", route)
	}
}
