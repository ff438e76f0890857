package model

import "time"

// Cleaning record statuses. The UI is Italian, statuses match it.
const (
	CleaningDaFare     = "da_fare"
	CleaningCompletata = "completata"
	CleaningAnnullata  = "annullata"
)

// Cleaning event types. The first five mirror what the schedule optimizer
// derives; "manuale" marks records entered by hand.
const (
	CleaningSeasonOpen    = "season_open"
	CleaningGuestTurnover = "guest_turnover"
	CleaningSeasonClose   = "season_close"
	CleaningPreCheckin    = "pre_checkin"
	CleaningPostStay      = "post_stay"
	CleaningManuale       = "manuale"
)

// Cleaning represents a persisted housekeeping record for one apartment on
// one day. The optimizer never writes these; they are created when a user
// accepts a suggestion or adds a manual entry.
type Cleaning struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	ApartmentID  int64      `gorm:"index;not null" json:"apartmentId"`
	Date         time.Time  `gorm:"not null;index" json:"date"`
	Type         string     `gorm:"size:32;not null;default:manuale" json:"type"`
	Status       string     `gorm:"size:32;not null;default:da_fare" json:"status"`
	CheckoutTime string     `gorm:"size:8" json:"checkoutTime,omitempty"`
	Note         string     `gorm:"size:512" json:"note,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`

	// Associations
	Apartment Apartment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
