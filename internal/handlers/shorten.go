package handlers

import (
	"net/http"
	"time"

	"tinyurl/internal/services"

	"github.com/gin-gonic/gin"
)

type ShortenRequest struct {
	OriginalURL string     `json:"originalUrl" binding:"required,http_url"`
	CustomAlias string     `json:"customAlias,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	OwnerID     string     `json:"ownerId,omitempty"`
}

type ShortenResponse struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	ShortURL    string     `json:"shortUrl,omitempty"`
	ShortCode   string     `json:"shortCode,omitempty"`
	OriginalURL string     `json:"originalUrl,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// ShortenURL handles the API request to shorten a URL
func (h *Handler) ShortenURL(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ShortenResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	res, err := h.shortenerService.Shorten(services.ShortenDTO{
		OriginalURL: req.OriginalURL,
		CustomAlias: req.CustomAlias,
		ExpiresAt:   req.ExpiresAt,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ShortenResponse{
		Success:     true,
		Message:     res.Message,
		ShortURL:    res.ShortURL,
		ShortCode:   res.Mapping.ShortCode,
		OriginalURL: res.Mapping.OriginalURL,
		ExpiresAt:   res.Mapping.ExpiresAt,
	})
}

func (h *Handler) CheckAlias(c *gin.Context) {
	alias := c.Param("alias")
	available := services.CheckAlias(alias)
	message := "Alias is available"
	if !available {
		message = "Alias is not available or invalid"
	}
	c.JSON(http.StatusOK, gin.H{
		"alias":     alias,
		"available": available,
		"message":   message,
	})
}
