package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	h.authenticate(c, parts[1])
}

// queryTokenMiddleware authenticates with ?token=, falling back to the header.
func (h *Handler) queryTokenMiddleware(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.userIdMiddleware(c)
		return
	}
	h.authenticate(c, token)
}

func (h *Handler) authenticate(c *gin.Context, token string) {
	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

// currentUser returns the id stored by the auth middleware.
func currentUser(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
