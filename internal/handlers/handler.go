package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"tinyurl/internal/config"
	"tinyurl/internal/models"
	"tinyurl/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg               config.Config
	logger            *slog.Logger
	shortenerService  *services.ShortenerService
	resolver          *services.Resolver
	clickRecorder     *services.ClickRecorder
	managementService *services.ManagementService
	analyticsService  *services.AnalyticsService
	bulkService       *services.BulkService
	dashboardService  *services.DashboardService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	shortenerService *services.ShortenerService,
	resolver *services.Resolver,
	clickRecorder *services.ClickRecorder,
	managementService *services.ManagementService,
	analyticsService *services.AnalyticsService,
	bulkService *services.BulkService,
	dashboardService *services.DashboardService,
) *Handler {
	return &Handler{
		cfg:               cfg,
		logger:            logger,
		shortenerService:  shortenerService,
		resolver:          resolver,
		clickRecorder:     clickRecorder,
		managementService: managementService,
		analyticsService:  analyticsService,
		bulkService:       bulkService,
		dashboardService:  dashboardService,
	}
}

const notFoundMessage = "Short URL not found"

// respondError maps service errors onto status codes. Expired and missing
// links look the same to the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case models.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
	case errors.Is(err, models.ErrCodeSpaceExhausted):
		h.logger.Error("Short code generation exhausted", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Could not allocate a short code"})
	default:
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

func (h *Handler) clickInput(c *gin.Context, code string) services.ClickInput {
	return services.ClickInput{
		Code:      code,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}
}
