package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowStats(c *gin.Context) {
	stats, err := h.shortenerService.Stats(c.Param("short_code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListUserURLs(c *gin.Context) {
	c.JSON(http.StatusOK, h.shortenerService.ListByOwner(c.Param("user_id")))
}

// DeleteURL serves both DELETE /:short_code and DELETE /manage/urls/:short_code.
func (h *Handler) DeleteURL(c *gin.Context) {
	shortCode := c.Param("short_code")
	if err := h.shortenerService.Delete(c.Request.Context(), shortCode, c.Query("userId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Short URL deleted"})
}
