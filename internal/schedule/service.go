package schedule

import (
	"context"
	"fmt"
	"time"

	"mareblu-backend/config"
	"mareblu-backend/internal/model"
	"mareblu-backend/internal/store"
)

// Service is the schedule API surface: the read path recomputes the season
// calendar from scratch and merges it with persisted records; the write
// path passes single-record mutations through to the store.
type Service struct {
	cfg   *config.ScheduleConfig
	store store.Store
}

// NewService creates a schedule service on top of a store.
func NewService(cfg *config.ScheduleConfig, st store.Store) *Service {
	return &Service{cfg: cfg, store: st}
}

// GetSchedule computes the cleaning calendar for one season. The window is
// [season start - lookback, season end]; today drives the past/upcoming
// statistics split and nothing else.
func (s *Service) GetSchedule(ctx context.Context, year int, today time.Time) (*Schedule, error) {
	season, err := s.cfg.Window(year)
	if err != nil {
		return nil, err
	}
	from := season.Start.AddDate(0, 0, -s.cfg.LookbackDays)
	to := season.End

	apartments, err := s.store.ListApartments(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("reservation reader unavailable: %w", err)
	}
	reservations, err := s.store.ListReservations(ctx, from, to, []string{model.ReservationCancelled})
	if err != nil {
		return nil, fmt.Errorf("reservation reader unavailable: %w", err)
	}
	cleanings, err := s.store.ListCleanings(ctx, from, to, []string{model.CleaningAnnullata})
	if err != nil {
		return nil, fmt.Errorf("cleaning store unavailable: %w", err)
	}

	byApartment := make(map[int64][]model.Reservation)
	for _, r := range reservations {
		byApartment[r.ApartmentID] = append(byApartment[r.ApartmentID], r)
	}

	classifier := &Classifier{GapThresholdNights: s.cfg.GapThresholdNights}
	var events []RawEvent
	for _, a := range apartments {
		events = append(events, classifier.Classify(a.ID, byApartment[a.ID])...)
	}

	plans, stats := merge(groupByWeek(events), apartments, cleanings, today)

	refs := make([]ApartmentRef, 0, len(apartments))
	for _, a := range apartments {
		refs = append(refs, ApartmentRef{ID: a.ID, Name: a.Name})
	}

	return &Schedule{DayPlans: plans, Stats: stats, Apartments: refs}, nil
}

// CreateCleaning records a manual entry or accepts a suggestion.
func (s *Service) CreateCleaning(ctx context.Context, params store.CreateCleaningParams) (*model.Cleaning, error) {
	return s.store.CreateCleaning(ctx, params)
}

// UpdateCleaning applies a partial update to one record.
func (s *Service) UpdateCleaning(ctx context.Context, id int64, patch store.CleaningPatch) (*model.Cleaning, error) {
	return s.store.UpdateCleaning(ctx, id, patch)
}

// DeleteCleaning hard-removes one record.
func (s *Service) DeleteCleaning(ctx context.Context, id int64) error {
	return s.store.DeleteCleaning(ctx, id)
}
