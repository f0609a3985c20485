package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinels to status codes. Anything unknown
// is logged and reported as a generic failure.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDayNotFound):
		RespondError(c, http.StatusNotFound, "Day not found")
	case errors.Is(err, ErrItemNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary item not found")
	case errors.Is(err, ErrExpenseNotFound):
		RespondError(c, http.StatusNotFound, "Expense not found")
	case errors.Is(err, ErrInvalidItemType):
		RespondError(c, http.StatusBadRequest, "Unknown item type")
	case errors.Is(err, ErrInvalidCategory):
		RespondError(c, http.StatusBadRequest, "Unknown expense category")
	case errors.Is(err, ErrInvalidAmount):
		RespondError(c, http.StatusBadRequest, "Amount must be greater than 0")
	case errors.Is(err, ErrInvalidOrder):
		RespondError(c, http.StatusBadRequest, "Item order does not match the day")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Wrong password, please try again")
	case errors.Is(err, ErrViewOnly):
		RespondError(c, http.StatusForbidden, "View-only mode cannot edit the itinerary")
	case errors.Is(err, ErrFeatureDisabled):
		RespondError(c, http.StatusServiceUnavailable, "Feature is not configured")
	case errors.Is(err, ErrUpstreamFailure):
		zap.L().Warn("upstream failure", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusBadGateway, "Upstream service failed, please try again later")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
