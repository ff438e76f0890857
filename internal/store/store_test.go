package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mareblu-backend/internal/model"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Apartment{}, &model.Reservation{}, &model.Cleaning{},
	))
	return NewGormStore(db)
}

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestListReservationsWindowAndStatuses(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.DB().Create(&model.Apartment{ID: 1, Name: "Giglio", Active: true}).Error)
	reservations := []model.Reservation{
		// check-in inside the window
		{ID: 1, ApartmentID: 1, CheckIn: date(2026, time.June, 1), CheckOut: date(2026, time.June, 8), Status: model.ReservationConfirmed},
		// only the check-out falls inside the window
		{ID: 2, ApartmentID: 1, CheckIn: date(2026, time.March, 25), CheckOut: date(2026, time.April, 2), Status: model.ReservationConfirmed},
		// entirely before the window
		{ID: 3, ApartmentID: 1, CheckIn: date(2026, time.January, 5), CheckOut: date(2026, time.January, 12), Status: model.ReservationConfirmed},
		// inside the window but cancelled
		{ID: 4, ApartmentID: 1, CheckIn: date(2026, time.July, 1), CheckOut: date(2026, time.July, 8), Status: model.ReservationCancelled},
	}
	require.NoError(t, s.DB().Create(&reservations).Error)

	got, err := s.ListReservations(ctx, date(2026, time.April, 1), date(2026, time.October, 31), []string{model.ReservationCancelled})
	require.NoError(t, err)

	ids := make([]int64, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestCreateCleaningDefaults(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.DB().Create(&model.Apartment{ID: 1, Name: "Giglio", Active: true}).Error)

	cleaning, err := s.CreateCleaning(ctx, CreateCleaningParams{
		ApartmentID:  1,
		Date:         time.Date(2026, time.July, 10, 18, 45, 0, 0, time.UTC),
		CheckoutTime: "9",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CleaningManuale, cleaning.Type)
	assert.Equal(t, model.CleaningDaFare, cleaning.Status)
	assert.Equal(t, "09:00", cleaning.CheckoutTime)
	assert.Equal(t, date(2026, time.July, 10), cleaning.Date)
	assert.Nil(t, cleaning.CompletedAt)
}

func TestCreateCleaningValidation(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, err := s.CreateCleaning(ctx, CreateCleaningParams{Date: date(2026, time.July, 10)})
	assert.Error(t, err)

	_, err = s.CreateCleaning(ctx, CreateCleaningParams{ApartmentID: 1})
	assert.Error(t, err)

	_, err = s.CreateCleaning(ctx, CreateCleaningParams{
		ApartmentID:  1,
		Date:         date(2026, time.July, 10),
		CheckoutTime: "not a time",
	})
	assert.Error(t, err)
}

func TestUpdateCleaningStatusLifecycle(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	created, err := s.CreateCleaning(ctx, CreateCleaningParams{ApartmentID: 1, Date: date(2026, time.July, 10)})
	require.NoError(t, err)

	// Completion stamps the timestamp.
	completata := model.CleaningCompletata
	updated, err := s.UpdateCleaning(ctx, created.ID, CleaningPatch{Status: &completata})
	require.NoError(t, err)
	assert.Equal(t, model.CleaningCompletata, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// A partial note update leaves status and timestamp alone.
	note := "chiavi sotto lo zerbino"
	updated, err = s.UpdateCleaning(ctx, created.ID, CleaningPatch{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, model.CleaningCompletata, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, note, updated.Note)

	// Reverting the status clears the timestamp.
	daFare := model.CleaningDaFare
	updated, err = s.UpdateCleaning(ctx, created.ID, CleaningPatch{Status: &daFare})
	require.NoError(t, err)
	assert.Equal(t, model.CleaningDaFare, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateCleaningNotFound(t *testing.T) {
	s := newSQLiteStore(t)
	status := model.CleaningCompletata
	_, err := s.UpdateCleaning(context.Background(), 999, CleaningPatch{Status: &status})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCleaning(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	created, err := s.CreateCleaning(ctx, CreateCleaningParams{ApartmentID: 1, Date: date(2026, time.July, 10)})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCleaning(ctx, created.ID))

	// Deleting again reports not-found, not success.
	err = s.DeleteCleaning(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListCleaningsQueryShape(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "cleanings" WHERE .*date BETWEEN .* AND .*status NOT IN .* ORDER BY date ASC, apartment_id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "apartment_id", "date", "type", "status"}).
			AddRow(1, 2, date(2026, time.August, 9), model.CleaningPostStay, model.CleaningDaFare))

	got, err := s.ListCleanings(context.Background(), date(2026, time.March, 18), date(2026, time.October, 31), []string{model.CleaningAnnullata})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ApartmentID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
