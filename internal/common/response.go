package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination page metadata for dictionary listings
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination creates Pagination with computed totalPages
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) > 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// SuccessResponse returns a 200 response with success=true merged into body
func SuccessResponse(c *gin.Context, body gin.H) {
	c.JSON(http.StatusOK, withSuccess(body))
}

func withSuccess(body gin.H) gin.H {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	return body
}

// ErrorResponse returns an error JSON response
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Error: &ErrorInfo{
			Code:    getErrorCode(status),
			Message: message,
		},
	})
}

// AbortWithError writes an error response and stops the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	ErrorResponse(c, status, message)
	c.Abort()
}

// StatusFor maps a service error to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case IsAuthError(err):
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyReviewed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes the response for a service error.
// 5xx responses carry fallback instead of the error text.
func HandleError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	msg := err.Error()
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		msg = ve.Message
	case status == http.StatusInternalServerError:
		_ = c.Error(err)
		msg = fallback
	}
	ErrorResponse(c, status, msg)
}

// getErrorCode generates error code from HTTP status
func getErrorCode(status int) string {
	switch status {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	case 429:
		return "TOO_MANY_REQUESTS"
	case 500:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
