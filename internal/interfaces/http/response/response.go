package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "paymint.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list response with pagination metadata
func Paginated(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": meta,
	})
}

// sentinelStatus maps bare domain errors to HTTP statuses. Errors wrapped in
// an AppError carry their own status and never reach this table.
var sentinelStatus = map[error]int{
	domainerrors.ErrNotFound:           http.StatusNotFound,
	domainerrors.ErrAlreadyExists:      http.StatusConflict,
	domainerrors.ErrInvalidInput:       http.StatusBadRequest,
	domainerrors.ErrBadRequest:         http.StatusBadRequest,
	domainerrors.ErrUnauthorized:       http.StatusUnauthorized,
	domainerrors.ErrInvalidCredentials: http.StatusUnauthorized,
	domainerrors.ErrTokenExpired:       http.StatusUnauthorized,
	domainerrors.ErrInvalidSignature:   http.StatusUnauthorized,
	domainerrors.ErrForbidden:          http.StatusForbidden,
	domainerrors.ErrInactiveUser:       http.StatusForbidden,
	domainerrors.ErrOrderPaid:          http.StatusConflict,
	domainerrors.ErrPaymentCompleted:   http.StatusConflict,
	domainerrors.ErrUnsupportedChain:   http.StatusBadRequest,
}

// Error maps a domain error onto the HTTP error envelope
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	for sentinel, status := range sentinelStatus {
		if errors.Is(err, sentinel) {
			c.JSON(status, gin.H{"error": sentinel.Error()})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// BadRequest sends a 400 with the given message, used for body binding
// failures before the domain layer is reached.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
