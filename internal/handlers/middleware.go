package handlers

import (
	"net/http"
	"strings"
	"time"

	"blog_app/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	actorKey    = "actor"
	tokenCookie = "token"
)

// actorMiddleware resolves the acting user from a Bearer header or the token
// cookie. A missing or expired token leaves the request anonymous; a header
// that is present but malformed is rejected.
func (h *Handler) actorMiddleware(c *gin.Context) {
	token := ""
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}
		token = parts[1]
	} else if v, err := c.Cookie(tokenCookie); err == nil {
		token = v
	}

	actor := models.Actor{}
	if token != "" {
		a, err := h.services.ParseToken(token)
		if err != nil {
			if h.log != nil {
				h.log.Debugw("auth_token_rejected", "err", err)
			}
		} else {
			actor = a
		}
	}

	c.Set(actorKey, actor)
	c.Next()
}

// actorFrom returns the actor stored by actorMiddleware, or anonymous.
func actorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(models.Actor); ok {
			return a
		}
	}
	return models.Actor{}
}

func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
