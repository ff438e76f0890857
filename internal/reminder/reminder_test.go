package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mareblu-backend/config"
	"mareblu-backend/internal/model"
	"mareblu-backend/internal/schedule"
	"mareblu-backend/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PushSubscription{}))

	cfg := &config.Config{}
	cfg.Schedule.Timezone = "UTC"
	cfg.Reminder.WorkerPoolSize = 1

	appStore := store.NewGormStore(db)
	return NewService(cfg, appStore, schedule.NewService(&cfg.Schedule, appStore))
}

func TestComposeMessage(t *testing.T) {
	svc := newTestService(t)
	tomorrow := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)

	result := &schedule.Schedule{
		DayPlans: []schedule.DayPlan{
			{
				Date:    tomorrow,
				Weekday: schedule.WeekdayName(tomorrow),
				Cleanings: []schedule.PlanEntry{
					{ApartmentID: 1, ApartmentName: "Giglio", Obligatoria: true},
					{ApartmentID: 2, ApartmentName: "Corallo"},
				},
			},
		},
	}

	message := svc.composeMessage(result, "2026-07-10")
	assert.Contains(t, message, "venerdì")
	assert.Contains(t, message, "2 pulizie")
	assert.Contains(t, message, "Giglio (obbligatoria)")
	assert.Contains(t, message, "Corallo")
}

func TestComposeMessageEmptyDay(t *testing.T) {
	svc := newTestService(t)
	result := &schedule.Schedule{
		DayPlans: []schedule.DayPlan{
			{Date: time.Date(2026, time.July, 9, 0, 0, 0, 0, time.UTC)},
		},
	}

	assert.Empty(t, svc.composeMessage(result, "2026-07-10"))
}

func TestComposeMessageFallsBackToApartmentID(t *testing.T) {
	svc := newTestService(t)
	tomorrow := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)
	result := &schedule.Schedule{
		DayPlans: []schedule.DayPlan{
			{
				Date:      tomorrow,
				Weekday:   schedule.WeekdayName(tomorrow),
				Cleanings: []schedule.PlanEntry{{ApartmentID: 7}},
			},
		},
	}

	assert.Contains(t, svc.composeMessage(result, "2026-07-10"), "appartamento 7")
}
