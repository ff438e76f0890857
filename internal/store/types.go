package store

import "time"

// CreateCleaningParams carries the fields for a new cleaning record.
// ApartmentID and Date are required; the rest is optional.
type CreateCleaningParams struct {
	ApartmentID  int64
	Date         time.Time
	Type         string
	CheckoutTime string
	Note         string
}

// CleaningPatch is a partial update of a cleaning record. Nil fields are
// left untouched.
type CleaningPatch struct {
	Status       *string
	CheckoutTime *string
	Note         *string
}
