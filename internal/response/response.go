// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasks-api/internal/errs"
	"tasks-api/internal/models"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool                   `json:"success"`
	Data    any                    `json:"data,omitempty"`
	Meta    *models.PaginationMeta `json:"meta,omitempty"`
	Error   *ErrorBody             `json:"error,omitempty"`
	Errors  []errs.Issue           `json:"errors,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Page(c *gin.Context, data any, meta models.PaginationMeta) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Meta: &meta})
}

func Error(c *gin.Context, e *errs.Error) {
	c.JSON(e.Status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: e.Code, Message: e.Message},
		Errors:  e.Issues,
	})
}
