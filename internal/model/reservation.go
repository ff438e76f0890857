package model

import "time"

// Reservation statuses as persisted by the booking module.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCheckedIn = "checked_in"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// Reservation represents a guest booking for an apartment. Check-out is
// exclusive: the unit is free again on the check-out date itself.
type Reservation struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	ApartmentID int64     `gorm:"index;not null" json:"apartmentId"`
	CheckIn     time.Time `gorm:"not null;index" json:"checkIn"`
	CheckOut    time.Time `gorm:"not null;index" json:"checkOut"`
	GuestName   string    `gorm:"size:256" json:"guestName"`
	Status      string    `gorm:"size:32;not null;default:confirmed" json:"status"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Associations
	Apartment Apartment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
