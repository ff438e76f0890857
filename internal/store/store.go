package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mareblu-backend/internal/model"
	"mareblu-backend/internal/parse"
)

// Store defines the interface for all database operations the schedule
// service depends on: the reservation reader and the cleaning store.
type Store interface {
	DB() *gorm.DB
	ListApartments(ctx context.Context, activeOnly bool) ([]model.Apartment, error)
	ListReservations(ctx context.Context, from, to time.Time, excludeStatuses []string) ([]model.Reservation, error)
	ListCleanings(ctx context.Context, from, to time.Time, excludeStatuses []string) ([]model.Cleaning, error)
	CreateCleaning(ctx context.Context, params CreateCleaningParams) (*model.Cleaning, error)
	UpdateCleaning(ctx context.Context, id int64, patch CleaningPatch) (*model.Cleaning, error)
	DeleteCleaning(ctx context.Context, id int64) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for handlers that query directly.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListApartments returns the apartment catalog, optionally only active units.
func (s *gormStore) ListApartments(ctx context.Context, activeOnly bool) ([]model.Apartment, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var apartments []model.Apartment
	if err := q.Find(&apartments).Error; err != nil {
		return nil, fmt.Errorf("failed to list apartments: %w", err)
	}
	return apartments, nil
}

// ListReservations returns reservations whose check-in or check-out falls
// within [from, to], sorted by apartment then check-in.
func (s *gormStore) ListReservations(ctx context.Context, from, to time.Time, excludeStatuses []string) ([]model.Reservation, error) {
	q := s.db.WithContext(ctx).
		Where("(check_in BETWEEN ? AND ?) OR (check_out BETWEEN ? AND ?)", from, to, from, to).
		Order("apartment_id ASC, check_in ASC")
	if len(excludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", excludeStatuses)
	}
	var reservations []model.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// ListCleanings returns persisted cleaning records with a date in [from, to].
func (s *gormStore) ListCleanings(ctx context.Context, from, to time.Time, excludeStatuses []string) ([]model.Cleaning, error) {
	q := s.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC, apartment_id ASC")
	if len(excludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", excludeStatuses)
	}
	var cleanings []model.Cleaning
	if err := q.Find(&cleanings).Error; err != nil {
		return nil, fmt.Errorf("failed to list cleanings: %w", err)
	}
	return cleanings, nil
}

// CreateCleaning inserts a new record with status da_fare. No duplicate
// check: creating on a suggested day is how a user accepts a suggestion.
func (s *gormStore) CreateCleaning(ctx context.Context, params CreateCleaningParams) (*model.Cleaning, error) {
	if params.ApartmentID == 0 || params.Date.IsZero() {
		return nil, fmt.Errorf("apartment id and date are required")
	}

	checkoutTime, err := parse.ParseClock(params.CheckoutTime)
	if err != nil {
		return nil, err
	}

	cleaningType := params.Type
	if cleaningType == "" {
		cleaningType = model.CleaningManuale
	}

	cleaning := model.Cleaning{
		ApartmentID:  params.ApartmentID,
		Date:         truncateToDay(params.Date),
		Type:         cleaningType,
		Status:       model.CleaningDaFare,
		CheckoutTime: checkoutTime,
		Note:         params.Note,
	}
	if err := s.db.WithContext(ctx).Create(&cleaning).Error; err != nil {
		return nil, fmt.Errorf("failed to create cleaning: %w", err)
	}
	return &cleaning, nil
}

// UpdateCleaning applies a partial update to a record. Setting status to
// completata stamps CompletedAt; any other status clears it.
func (s *gormStore) UpdateCleaning(ctx context.Context, id int64, patch CleaningPatch) (*model.Cleaning, error) {
	var cleaning model.Cleaning
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cleaning, id).Error; err != nil {
			return err
		}

		if patch.Status != nil {
			cleaning.Status = *patch.Status
			if *patch.Status == model.CleaningCompletata {
				now := time.Now().UTC()
				cleaning.CompletedAt = &now
			} else {
				cleaning.CompletedAt = nil
			}
		}
		if patch.CheckoutTime != nil {
			checkoutTime, err := parse.ParseClock(*patch.CheckoutTime)
			if err != nil {
				return err
			}
			cleaning.CheckoutTime = checkoutTime
		}
		if patch.Note != nil {
			cleaning.Note = *patch.Note
		}

		return tx.Save(&cleaning).Error
	})
	if err != nil {
		return nil, err
	}
	return &cleaning, nil
}

// DeleteCleaning hard-removes a record. A missing id is reported as
// gorm.ErrRecordNotFound, not swallowed.
func (s *gormStore) DeleteCleaning(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Cleaning{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cleaning %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
