package model

import "time"

// Apartment represents a rental unit in the property catalog.
type Apartment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	Reservations []Reservation `gorm:"foreignKey:ApartmentID" json:"-"`
}
