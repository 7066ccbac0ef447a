package types

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Error:   string(apperrors.ErrCodeValidation),
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendError maps an error to its HTTP status and a standardized body
func SendError(c *gin.Context, err error) {
	status := apperrors.GetHTTPCode(err)
	response := ErrorResponse{
		Status:  StatusError,
		Message: err.Error(),
		Error:   string(apperrors.GetCode(err)),
	}
	if appErr, ok := apperrors.As(err); ok {
		response.Message = appErr.Message
		if len(appErr.Details) > 0 {
			response.Details = appErr.Details
		}
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, response)
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Message: message})
}

// SendServiceUnavailable reports a dependency that was not configured
func SendServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Status: StatusError, Message: message})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// OK builds a success BaseResponse
func OK(message string) BaseResponse {
	return BaseResponse{Status: StatusOK, Message: message}
}
