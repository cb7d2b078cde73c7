package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RedirectToURL counts the click on the mapping, then appends the click
// record outside the store lock.
func (h *Handler) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("short_code")

	target, err := h.resolver.Resolve(shortCode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.clickRecorder.RecordClick(c.Request.Context(), h.clickInput(c, shortCode))

	c.Redirect(http.StatusFound, target)
}
