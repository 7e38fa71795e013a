package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      About page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /about/ [get]
func (h *Handler) about(c *gin.Context) {
	h.render(c, http.StatusOK, gin.H{"title": "About Page"})
}
