package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mareblu-backend/internal/store"
)

type createCleaningRequest struct {
	ApartmentID  int64  `json:"apartment_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Type         string `json:"type"`
	CheckoutTime string `json:"checkout_time"`
	Note         string `json:"note"`
}

// CreateCleaning handles POST /api/cleanings. Creating a record on a
// suggested day is how a user accepts the suggestion.
func (h *Handler) CreateCleaning(c *gin.Context) {
	var req createCleaningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, want YYYY-MM-DD"})
		return
	}

	cleaning, err := h.store.CreateCleaning(c.Request.Context(), store.CreateCleaningParams{
		ApartmentID:  req.ApartmentID,
		Date:         date,
		Type:         req.Type,
		CheckoutTime: req.CheckoutTime,
		Note:         req.Note,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, cleaning)
}

type updateCleaningRequest struct {
	Status       *string `json:"status"`
	CheckoutTime *string `json:"checkout_time"`
	Note         *string `json:"note"`
}

// UpdateCleaning handles PATCH /api/cleanings/:id with a partial update.
func (h *Handler) UpdateCleaning(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cleaning ID"})
		return
	}

	var req updateCleaningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cleaning, err := h.store.UpdateCleaning(c.Request.Context(), id, store.CleaningPatch{
		Status:       req.Status,
		CheckoutTime: req.CheckoutTime,
		Note:         req.Note,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cleaning not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, cleaning)
}

// DeleteCleaning handles DELETE /api/cleanings/:id. Deleting a missing id
// reports not-found rather than success.
func (h *Handler) DeleteCleaning(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cleaning ID"})
		return
	}

	if err := h.store.DeleteCleaning(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cleaning not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.flushCache()
	c.Status(http.StatusNoContent)
}
