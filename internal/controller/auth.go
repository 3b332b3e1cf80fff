package controller

import (
	"github.com/gin-gonic/gin"

	"tasks-api/internal/middleware"
	"tasks-api/internal/response"
	"tasks-api/internal/validation"
)

// Login exchanges credentials for a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	req := middleware.Body[validation.LoginRequest](c)
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, gin.H{"token": token})
}
