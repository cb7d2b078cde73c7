package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.Summary(c.Query("userId")))
}

func (h *Handler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.dashboardService.ExportCSV(&buf, c.Query("userId")); err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("urls_export_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
