package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"tasks-api/internal/errs"
	"tasks-api/internal/validation"
	"tasks-api/pkg/logger"
)

const (
	rawBodyKey   = "raw_body"
	bodyKey      = "body"
	queryKey     = "query"
	maxBodyBytes = 1 << 20

	RequestIDHeader = "X-Request-ID"
)

// RequestID propagates or assigns a request id and tags the context logger with it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// ParseJSON reads the body and rejects empty or malformed JSON.
func ParseJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
			if err != nil {
				abort(c, errs.Validation(errs.Issue{Code: "invalid_body", Message: "Unable to read request body"}))
				return
			}
			body = b
		}
		switch {
		case len(body) > maxBodyBytes:
			abort(c, errs.Validation(errs.Issue{Code: "too_big", Message: "Request body too large"}))
			return
		case len(bytes.TrimSpace(body)) == 0:
			abort(c, errs.Validation(errs.Issue{Code: "invalid_body", Message: "Request body is required"}))
			return
		case !json.Valid(body):
			abort(c, errs.Validation(errs.Issue{Code: "invalid_json", Message: "Invalid JSON body"}))
			return
		}
		c.Set(rawBodyKey, body)
		c.Next()
	}
}

// ValidateJSON binds the parsed body into T and checks its rules. Must run after ParseJSON.
func ValidateJSON[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Get(rawBodyKey)
		body, _ := raw.([]byte)
		var req T
		if err := binding.JSON.BindBody(body, &req); err != nil {
			abort(c, errs.Validation(validation.Issues(err)...))
			return
		}
		c.Set(bodyKey, req)
		c.Next()
	}
}

// ValidateQuery binds the query string into T and checks its rules.
func ValidateQuery[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindQuery(&req); err != nil {
			abort(c, errs.Validation(validation.Issues(err)...))
			return
		}
		c.Set(queryKey, req)
		c.Next()
	}
}

// Body returns the value stored by ValidateJSON.
func Body[T any](c *gin.Context) T {
	v, _ := c.Get(bodyKey)
	req, _ := v.(T)
	return req
}

// Query returns the value stored by ValidateQuery.
func Query[T any](c *gin.Context) T {
	v, _ := c.Get(queryKey)
	req, _ := v.(T)
	return req
}
