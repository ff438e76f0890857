package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mareblu-backend/config"
	"mareblu-backend/internal/api"
	"mareblu-backend/internal/model"
	"mareblu-backend/internal/schedule"
	"mareblu-backend/internal/store"
)

// TestScheduleLifecycle walks the whole read/write loop: compute the season
// calendar, accept a suggestion, complete it, and verify the recomputed
// calendar shows the persisted record instead of a fresh suggestion.
func TestScheduleLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(
		&model.Apartment{}, &model.Reservation{}, &model.Cleaning{}, &model.PushSubscription{},
	))

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 100
	cfg.Server.RateLimitBurst = 100
	cfg.Server.CacheTTLSeconds = 60
	cfg.Schedule = config.ScheduleConfig{
		GapThresholdNights: 6,
		LookbackDays:       14,
		SeasonOpen:         "04-01",
		SeasonClose:        "10-31",
		Timezone:           "UTC",
	}

	appStore := store.NewGormStore(testDB)
	scheduleSvc := schedule.NewService(&cfg.Schedule, appStore)
	router := api.NewRouter(cfg, appStore, scheduleSvc, nil)

	// Seed: two apartments, one with a same-day turnover mid-July.
	apartments := []model.Apartment{
		{ID: 1, Name: "Giglio", Active: true},
		{ID: 2, Name: "Corallo", Active: true},
	}
	require.NoError(t, testDB.Create(&apartments).Error)
	day := func(month time.Month, d int) time.Time {
		return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
	}
	reservations := []model.Reservation{
		{ApartmentID: 1, CheckIn: day(time.July, 3), CheckOut: day(time.July, 10), Status: model.ReservationConfirmed},
		{ApartmentID: 1, CheckIn: day(time.July, 10), CheckOut: day(time.July, 17), Status: model.ReservationConfirmed},
		{ApartmentID: 2, CheckIn: day(time.August, 2), CheckOut: day(time.August, 9), Status: model.ReservationConfirmed},
	}
	require.NoError(t, testDB.Create(&reservations).Error)

	getSchedule := func(t *testing.T) schedule.Schedule {
		t.Helper()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/schedule?year=2026", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var result schedule.Schedule
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		return result
	}

	findEntry := func(result schedule.Schedule, apartmentID int64, date time.Time) *schedule.PlanEntry {
		for _, plan := range result.DayPlans {
			for i := range plan.Cleanings {
				e := plan.Cleanings[i]
				if e.ApartmentID == apartmentID && e.Date.Equal(date) {
					return &plan.Cleanings[i]
				}
			}
		}
		return nil
	}

	var recordID int64

	t.Run("computed calendar has turnover and bookends", func(t *testing.T) {
		result := getSchedule(t)
		require.Len(t, result.Apartments, 2)

		turnover := findEntry(result, 1, day(time.July, 10))
		require.NotNil(t, turnover, "expected a turnover entry on Jul 10")
		assert.Equal(t, model.CleaningGuestTurnover, turnover.Type)
		assert.True(t, turnover.Obligatoria)
		assert.True(t, turnover.Suggested)

		seasonClose := findEntry(result, 2, day(time.August, 9))
		require.NotNil(t, seasonClose, "expected a season close entry on Aug 9")
		assert.False(t, seasonClose.Obligatoria)
	})

	t.Run("accepting a suggestion persists a record", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"apartment_id": 2,
			"date":         "2026-08-09",
			"type":         model.CleaningSeasonClose,
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/cleanings", bytes.NewReader(body))
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Cleaning
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		recordID = created.ID

		result := getSchedule(t)
		entry := findEntry(result, 2, day(time.August, 9))
		require.NotNil(t, entry)
		assert.False(t, entry.Suggested)
		assert.Equal(t, recordID, entry.RecordID)
		assert.Equal(t, model.CleaningDaFare, entry.Status)
	})

	t.Run("completing the record is reflected on the next read", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"status": model.CleaningCompletata})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/cleanings/%d", recordID), bytes.NewReader(body))
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		result := getSchedule(t)
		entry := findEntry(result, 2, day(time.August, 9))
		require.NotNil(t, entry)
		assert.Equal(t, model.CleaningCompletata, entry.Status)
		assert.NotNil(t, entry.CompletedAt)
	})

	t.Run("apartments listing aggregates pending cleanings", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/apartments", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var apartments []api.ApartmentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apartments))
		require.Len(t, apartments, 2)
		// The accepted record is completata by now, nothing pending.
		assert.Equal(t, int64(0), apartments[1].PendingCleaning)
	})

	t.Run("deleting the record restores the suggestion", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/cleanings/%d", recordID), nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)

		result := getSchedule(t)
		entry := findEntry(result, 2, day(time.August, 9))
		require.NotNil(t, entry)
		assert.True(t, entry.Suggested)
		assert.Zero(t, entry.RecordID)
	})
}
