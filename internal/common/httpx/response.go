package httpx

import (
	"net/http"

	"github.com/vik9386/backend/internal/common"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every 2xx endpoint returns.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIError is the envelope the error boundary returns.
type APIError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// WriteSuccess writes the success envelope with the given status code.
func WriteSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteError writes the error envelope for an arbitrary HTTP status.
func WriteError(c *gin.Context, status int, message string) {
	c.JSON(status, APIError{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// WriteServiceError maps a service-layer error onto the error envelope.
// Unknown error values degrade to 500 with the fallback message so internal
// details never leak to the client.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := common.AsServiceError(err); ok {
		WriteError(c, serviceErrorStatus(serviceErr.Code), serviceErr.Message)
		return
	}
	WriteError(c, http.StatusInternalServerError, fallbackMessage)
}

func serviceErrorStatus(code common.ErrorCode) int {
	switch code {
	case common.ErrorCodeValidation:
		return http.StatusBadRequest
	case common.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorCodeForbidden:
		return http.StatusForbidden
	case common.ErrorCodeConflict:
		return http.StatusConflict
	case common.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
