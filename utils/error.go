package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Domain error taxonomy. Services return these; handlers map them to HTTP
// status codes with errors.As. Transition guards that fail must return
// InvalidStateError without mutating any record.

// ValidationError signals malformed or inconsistent input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// NotFoundError signals an unknown record id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// UnauthorizedError signals that the actor lacks ownership or role.
type UnauthorizedError struct {
	Message string
}

func (e UnauthorizedError) Error() string { return e.Message }

// InvalidStateError signals a state-machine guard failure.
type InvalidStateError struct {
	Message string
}

func (e InvalidStateError) Error() string { return e.Message }

// GatewayError signals a failed or unexpected payment-gateway response.
type GatewayError struct {
	Op  string
	Err error
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e GatewayError) Unwrap() error { return e.Err }

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
