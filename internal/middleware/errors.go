package middleware

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"tasks-api/internal/errs"
	"tasks-api/internal/response"
	"tasks-api/pkg/logger"
)

// ErrorHandler translates the last error recorded by the chain into the error
// envelope. Errors that are not *errs.Error become a generic 500 and are logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		ctx := c.Request.Context()
		err := c.Errors.Last().Err
		appErr, known := errs.From(err)
		if known {
			logger.Debug(ctx, "Request failed", "code", appErr.Code, "message", appErr.Message, "path", c.FullPath())
		} else {
			logger.Error(ctx, "Unhandled error", "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
		}
		if c.Writer.Written() {
			return
		}
		response.Error(c, appErr)
	}
}

// Recovery turns panics into internal errors for ErrorHandler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "Panic recovered", "panic", recovered, "stack", string(debug.Stack()))
		abort(c, fmt.Errorf("panic: %v", recovered))
	})
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	abort(c, errs.NotFound("Route not found"))
}
