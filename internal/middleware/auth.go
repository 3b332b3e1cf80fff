package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tasks-api/internal/errs"
	"tasks-api/internal/models"
	"tasks-api/pkg/logger"
)

const authKey = "auth"

// TokenVerifier decodes a bearer token into the caller's identity.
type TokenVerifier interface {
	VerifyToken(token string) (models.AuthPayload, error)
}

// Auth requires "Authorization: Bearer <token>" and stores the decoded identity.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		header := c.GetHeader("Authorization")
		if header == "" {
			logger.Debug(ctx, "Missing Authorization header")
			abort(c, errs.Unauthorized("Missing Authorization header"))
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || scheme != "Bearer" || token == "" {
			logger.Debug(ctx, "Malformed Authorization header")
			abort(c, errs.Unauthorized("Invalid Authorization format. Use: Bearer <token>"))
			return
		}
		payload, err := verifier.VerifyToken(token)
		if err != nil {
			logger.Debug(ctx, "Token rejected", "error", err)
			abort(c, err)
			return
		}
		c.Set(authKey, payload)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, payload.UserID))
		c.Next()
	}
}

// User returns the identity stored by Auth.
func User(c *gin.Context) models.AuthPayload {
	p, _ := c.MustGet(authKey).(models.AuthPayload)
	return p
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
