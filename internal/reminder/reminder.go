package reminder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"mareblu-backend/config"
	"mareblu-backend/internal/notification"
	"mareblu-backend/internal/schedule"
	"mareblu-backend/internal/store"
)

// Service periodically recomputes tomorrow's cleaning plan and pushes a
// summary to every registered staff device.
type Service struct {
	cfg        *config.Config
	schedule   *schedule.Service
	workerPool *notification.WorkerPool
	location   *time.Location

	lastNotified string // day key of the last reminder sent
}

// NewService creates and initializes a new reminder service.
func NewService(cfg *config.Config, st store.Store, svc *schedule.Service) *Service {
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, reminder falls back to UTC", cfg.Schedule.Timezone)
		loc = time.UTC
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		schedule:   svc,
		workerPool: notification.NewWorkerPool(cfg.Reminder.WorkerPoolSize, st.DB(), &webpushOptions),
		location:   loc,
	}
}

// Run starts the reminder loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		log.Println("Reminder loop is disabled. Not starting.")
		return
	}
	log.Println("Starting reminder service...")

	s.workerPool.Start(ctx)

	s.RunOnce(ctx)

	timer := time.NewTimer(s.cfg.Reminder.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service shutting down.")
			return
		case <-timer.C:
			s.RunOnce(ctx)
			timer.Reset(s.cfg.Reminder.Interval)
		}
	}
}

// RunOnce computes tomorrow's plan and dispatches one reminder for it. A
// day is only announced once per process lifetime.
func (s *Service) RunOnce(ctx context.Context) {
	now := time.Now().In(s.location)
	tomorrow := now.AddDate(0, 0, 1)
	tomorrowKey := tomorrow.Format("2006-01-02")

	if s.lastNotified == tomorrowKey {
		return
	}

	result, err := s.schedule.GetSchedule(ctx, tomorrow.Year(), now)
	if err != nil {
		log.Printf("Reminder cycle failed to compute schedule: %v", err)
		return
	}

	message := s.composeMessage(result, tomorrowKey)
	if message == "" {
		return
	}

	s.workerPool.Dispatch(message)
	s.lastNotified = tomorrowKey
}

// composeMessage builds the Italian push text for the given day, or returns
// an empty string when nothing is scheduled.
func (s *Service) composeMessage(result *schedule.Schedule, dayKey string) string {
	for _, plan := range result.DayPlans {
		if plan.Date.Format("2006-01-02") != dayKey {
			continue
		}

		names := make([]string, 0, len(plan.Cleanings))
		for _, entry := range plan.Cleanings {
			label := entry.ApartmentName
			if label == "" {
				label = fmt.Sprintf("appartamento %d", entry.ApartmentID)
			}
			if entry.Obligatoria {
				label += " (obbligatoria)"
			}
			names = append(names, label)
		}
		return fmt.Sprintf("Domani %s: %d pulizie (%s)",
			plan.Weekday, len(plan.Cleanings), strings.Join(names, ", "))
	}
	return ""
}
