package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sitescope/backend/internal/scraper"
)

// ScrapeRequest represents the scrape request payload
type ScrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

// ScrapeHandler handles one-shot page scraping
func ScrapeHandler(svc *scraper.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "URL is required",
				"message": "Please provide a URL in the request body",
			})
			return
		}

		address := strings.TrimSpace(req.URL)
		if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
			address = "https://" + address
		}

		record, err := svc.Scrape(c.Request.Context(), address)
		if err != nil {
			logrus.Warnf("Scrape failed for %s: %v", address, err)
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
				"message": "Failed to scrape the website. Please check the URL and try again.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    record,
		})
	}
}
