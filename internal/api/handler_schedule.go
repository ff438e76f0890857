package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetSchedule handles GET /api/schedule?year=YYYY. Without a year parameter
// the current season is computed.
func (h *Handler) GetSchedule(c *gin.Context) {
	today := h.today()

	year := today.Year()
	if yearParam := c.Query("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil || parsed < 2000 || parsed > 2200 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	result, err := h.schedule.GetSchedule(c.Request.Context(), year, today)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute schedule"})
		return
	}

	c.JSON(http.StatusOK, result)
}
