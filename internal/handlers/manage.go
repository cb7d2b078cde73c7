package handlers

import (
	"net/http"
	"time"

	"tinyurl/internal/repository"
	"tinyurl/internal/services"

	"github.com/gin-gonic/gin"
)

type listParams struct {
	UserID   string `form:"userId"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type UpdateRequest struct {
	OriginalURL *string    `json:"originalUrl" binding:"omitempty,http_url"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	IsActive    *bool      `json:"isActive"`
}

type BulkRequest struct {
	ShortCodes []string `json:"shortCodes" binding:"required,min=1"`
	Operation  string   `json:"operation" binding:"required"`
}

func (h *Handler) ListURLs(c *gin.Context) {
	var p listParams
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid pagination: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.managementService.List(repository.ListQuery{
		OwnerID:  p.UserID,
		Page:     p.Page,
		PageSize: p.PageSize,
	}))
}

func (h *Handler) GetURLDetail(c *gin.Context) {
	detail, err := h.managementService.Detail(c.Request.Context(), c.Param("short_code"), c.Query("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateURL(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	m, err := h.managementService.Update(c.Param("short_code"), c.Query("userId"), services.UpdateDTO{
		OriginalURL: req.OriginalURL,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	a, err := h.analyticsService.Analytics(c.Request.Context(), c.Param("short_code"), c.Query("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) BulkOperation(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}
	report := h.bulkService.Apply(c.Request.Context(), req.ShortCodes, req.Operation, c.Query("userId"))
	c.JSON(http.StatusOK, report)
}

// TrackClick records a click reported by a client that resolved the link itself.
func (h *Handler) TrackClick(c *gin.Context) {
	shortCode := c.Param("short_code")
	h.clickRecorder.TrackClick(c.Request.Context(), h.clickInput(c, shortCode))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
