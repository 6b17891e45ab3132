package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fip_qc/internal/service"
)

// operatorIDKey is the gin context key holding the authenticated operator id.
const operatorIDKey = "operatorId"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	operatorID, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(operatorIDKey, operatorID)
	c.Next()
}

// operatorContext returns the request context tagged with the authenticated
// operator, so stored runs and acquisitions record who triggered them.
func operatorContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if id := c.GetInt(operatorIDKey); id > 0 {
		ctx = service.WithOperator(ctx, id)
	}
	return ctx
}
