package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/pkg/apperror"
)

// APIResponse is the envelope of every response body
type APIResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Success writes a {message, data} body
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{Message: message, Data: data})
}

// Error writes a {message, data: null} body
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[any]{Message: message})
}

// AbortWithError is FromError for middleware: it also stops the handler chain
func AbortWithError(ctx *gin.Context, err error) {
	FromError(ctx, err)
	ctx.Abort()
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindAuthentication:
		return http.StatusForbidden
	case apperror.KindInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// FromError writes err using its kind's status and message
func FromError(ctx *gin.Context, err error) {
	msg := err.Error()
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		msg = appErr.Error()
	}
	Error(ctx, StatusFor(err), msg)
}
