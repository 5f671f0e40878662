package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/ub0r/travellog-backend/internal/middleware"
	"github.com/ub0r/travellog-backend/pkg/response"
)

// AuthHandler issues API tokens
type AuthHandler struct {
	secret string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{secret: secret}
}

// Token handles POST /api/v1/auth/token. The caller proves knowledge of
// the shared secret and gets a signed bearer token back.
func (h *AuthHandler) Token(c *gin.Context) {
	var req struct {
		Secret string `json:"secret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 {
		response.Error(c, 401, "Invalid secret")
		return
	}

	token, err := middleware.IssueToken(h.secret)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"token": token})
}
