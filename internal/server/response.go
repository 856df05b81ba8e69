package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nao1215/sentiment/internal/classifier"
	"github.com/nao1215/sentiment/internal/model"
)

// Error codes returned in ErrorInfo.Code.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeTextTooLarge     = "TEXT_TOO_LARGE"
	CodeModelUnavailable = "MODEL_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Response represents the standard API response structure
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *MetaInfo  `json:"meta"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) *MetaInfo {
	requestID := c.GetString(requestIDKey)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &MetaInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Meta:    newMeta(c),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
		Meta: newMeta(c),
	})
}

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapError maps prediction and report errors to HTTP error responses.
func MapError(err error) ErrorResponse {
	switch {
	case errors.Is(err, model.ErrUnknownModel):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    "unknown model",
		}
	case errors.Is(err, errTextTooLarge):
		return ErrorResponse{
			StatusCode: http.StatusRequestEntityTooLarge,
			Code:       CodeTextTooLarge,
			Message:    "text is too large",
		}
	case errors.Is(err, classifier.ErrModelNotLoaded):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       CodeModelUnavailable,
			Message:    "model is not loaded",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternalError,
			Message:    "internal server error",
		}
	}
}

// handleError sends the JSON error response for err.
func handleError(c *gin.Context, err error) {
	errResp := MapError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}
