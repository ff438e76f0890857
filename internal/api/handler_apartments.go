package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mareblu-backend/internal/model"
)

// ApartmentResponse represents the API response for a single apartment.
type ApartmentResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Active          bool   `json:"active"`
	PendingCleaning int64  `json:"pendingCleanings"`
}

// GetApartments handles the GET /api/apartments request.
func (h *Handler) GetApartments(c *gin.Context) {
	apartments, err := h.store.ListApartments(c.Request.Context(), false)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve apartments"})
		return
	}

	// One aggregate query for the pending-cleaning counts.
	type aggRow struct {
		ApartmentID int64
		Pending     int64
	}
	var aggs []aggRow
	if err := h.store.DB().
		Model(&model.Cleaning{}).
		Select("apartment_id as apartment_id, COUNT(*) as pending").
		Where("status = ?", model.CleaningDaFare).
		Group("apartment_id").
		Scan(&aggs).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate cleanings"})
		return
	}

	aggMap := make(map[int64]int64, len(aggs))
	for _, a := range aggs {
		aggMap[a.ApartmentID] = a.Pending
	}

	responses := make([]ApartmentResponse, 0, len(apartments))
	for _, a := range apartments {
		responses = append(responses, ApartmentResponse{
			ID: a.ID, Name: a.Name, Active: a.Active,
			PendingCleaning: aggMap[a.ID],
		})
	}
	c.JSON(http.StatusOK, responses)
}
