package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/shorten", h.ShortenURL)
	r.GET("/check-alias/:alias", h.CheckAlias)
	r.GET("/user/:user_id", h.ListUserURLs)

	manage := r.Group("/manage")
	{
		manage.GET("/urls", h.ListURLs)
		manage.GET("/urls/:short_code", h.GetURLDetail)
		manage.PUT("/urls/:short_code", h.UpdateURL)
		manage.DELETE("/urls/:short_code", h.DeleteURL)
		manage.GET("/urls/:short_code/analytics", h.GetAnalytics)
		manage.POST("/urls/:short_code/click", h.TrackClick)
		manage.POST("/bulk", h.BulkOperation)
		manage.GET("/dashboard", h.ShowDashboard)
		manage.GET("/export/csv", h.ExportCSV)
	}

	// Catch-all short codes
	r.GET("/:short_code", h.RedirectToURL)
	r.GET("/:short_code/stats", h.ShowStats)
	r.DELETE("/:short_code", h.DeleteURL)

	return r
}
