package handlers

import (
	"errors"
	"net/http"

	"serendibgo/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   utils.ValidationError
		notFoundErr     utils.NotFoundError
		unauthorizedErr utils.UnauthorizedError
		invalidStateErr utils.InvalidStateError
		gatewayErr      utils.GatewayError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", validationErr.Message)
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "Not found", notFoundErr.Error())
	case errors.As(err, &unauthorizedErr):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", unauthorizedErr.Message)
	case errors.As(err, &invalidStateErr):
		utils.JSONError(c, http.StatusConflict, "Invalid state", invalidStateErr.Message)
	case errors.As(err, &gatewayErr):
		utils.JSONError(c, http.StatusBadGateway, "Payment gateway error", gatewayErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
