package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/api_gateway/middleware"
	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// Response represents a standard API response
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// ErrorInfo represents error information in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewResponse creates a new response with data
func NewResponse(data interface{}) *Response {
	return &Response{
		Data: data,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string) *Response {
	return &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	response := NewResponse(data)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	response := NewErrorResponse(code, message)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

// RespondNoContent sends a 204 No Content response
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// RespondInternalError sends a 500 Internal Server Error response with an error
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
}

// RespondDomainError translates an error from the engine into its HTTP shape
// using the stable error code vocabulary. Unmapped errors are infrastructure
// failures and surface as 500 without leaking internals.
func RespondDomainError(c *gin.Context, err error) {
	code := shared.CodeOf(err)
	switch code {
	case shared.CodeInvalidAmount, shared.CodeMissingIdentifier:
		RespondWithError(c, http.StatusBadRequest, string(code), err.Error())
	case shared.CodeIdentifierBanned:
		RespondWithError(c, http.StatusForbidden, string(code), err.Error())
	case shared.CodeChargeNotFound, shared.CodeOrderNotFound:
		RespondWithError(c, http.StatusNotFound, string(code), err.Error())
	case shared.CodeAlreadyConfirmed:
		RespondWithError(c, http.StatusConflict, string(code), err.Error())
	case shared.CodeNoPendingCharge:
		RespondWithError(c, http.StatusUnprocessableEntity, string(code), err.Error())
	default:
		RespondInternalError(c)
	}
}
