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
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
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

type errorMapping struct {
	target  error
	code    int
	message string
}

var serviceErrors = []errorMapping{
	{ErrPlaceNotFound, http.StatusNotFound, "Place not found"},
	{ErrJourneyNotFound, http.StatusNotFound, "Journey not found"},
	{ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
	{ErrSuggestionNotFound, http.StatusNotFound, "Suggestion not found"},
	{ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{ErrInvalidPage, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, http.StatusBadRequest, "Page size must be between 1 and 100"},
	{ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
	{ErrInvalidModerationStatus, http.StatusBadRequest, "Status must be one of pending, approved, rejected"},
	{ErrInvalidTimeOfDay, http.StatusBadRequest, "time_of_day must be one of morning, afternoon, evening, night"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},
	{ErrEmbeddingUnavailable, http.StatusServiceUnavailable, "Search is not available"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			RespondError(c, m.code, m.message)
			return
		}
	}

	if errors.Is(err, ErrDatabaseError) {
		zap.L().Error("database error", zap.String("trace_id", traceID(c)), zap.Error(err))
	} else {
		zap.L().Error("unhandled service error", zap.String("trace_id", traceID(c)), zap.Error(err))
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
