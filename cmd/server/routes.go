package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"paymint.backend/internal/interfaces/http/handlers"
	"paymint.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	orderHandler   *handlers.OrderHandler
	paymentHandler *handlers.PaymentHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (login endpoints public, profile endpoints protected)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/wallet/nonce", d.authHandler.WalletNonce)
			auth.POST("/wallet/login", d.authHandler.WalletLogin)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// User routes (protected; list and delete are admin-gated in the usecase)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("", d.userHandler.ListUsers)
			users.GET("/:id", d.userHandler.GetUser)
			users.PUT("/:id", d.userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), d.userHandler.DeleteUser)
		}

		// Order routes (protected)
		orders := v1.Group("/orders")
		orders.Use(d.authMiddleware)
		{
			orders.POST("/invoice", d.orderHandler.CreateInvoice)
			orders.POST("/payroll", d.orderHandler.CreatePayroll)
			orders.GET("", d.orderHandler.ListOrders)
			orders.GET("/:orderNo", d.orderHandler.GetOrder)
			orders.PUT("/:orderNo", d.orderHandler.UpdateOrder)
			orders.DELETE("/:orderNo", d.orderHandler.DeleteOrder)
			orders.POST("/:orderNo/pay", d.orderHandler.MarkOrderPaid)
		}

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("", d.paymentHandler.CreatePayment)
			payments.GET("", d.paymentHandler.ListPayments)
			payments.GET("/:paymentNo", d.paymentHandler.GetPayment)
			payments.PUT("/:paymentNo", d.paymentHandler.UpdatePayment)
			payments.DELETE("/:paymentNo", middleware.RequireAdmin(), d.paymentHandler.DeletePayment)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "paymint-backend",
			"version": "0.1.0",
		})
	})
}
