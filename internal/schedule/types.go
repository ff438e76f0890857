package schedule

import (
	"fmt"
	"time"
)

// RawEvent is a cleaning requirement derived from the reservation sequence.
// It is recomputed on every request and never persisted. Flexible events may
// slide to a later day within their calendar week; fixed events may not.
type RawEvent struct {
	ApartmentID int64
	Date        time.Time // anchor day, UTC midnight
	Type        string
	Note        string
	Flexible    bool
}

// PlanEntry is one apartment's cleaning on one day of the final calendar,
// either a fresh suggestion or an overlay of a persisted record.
type PlanEntry struct {
	ApartmentID   int64      `json:"apartmentId"`
	ApartmentName string     `json:"apartmentName"`
	Date          time.Time  `json:"date"`
	Type          string     `json:"type"`
	Note          string     `json:"note,omitempty"`
	Obligatoria   bool       `json:"obligatoria"`
	Spostata      bool       `json:"spostata"`
	OriginalDate  *time.Time `json:"originalDate,omitempty"`
	Suggested     bool       `json:"suggested"`
	RecordID      int64      `json:"recordId,omitempty"`
	Status        string     `json:"status,omitempty"`
	CheckoutTime  string     `json:"checkoutTime,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// DayPlan is the list of cleanings scheduled for a single day.
type DayPlan struct {
	Date        time.Time   `json:"date"`
	Weekday     string      `json:"weekday"`
	Cleanings   []PlanEntry `json:"cleanings"`
	Obligatorie int         `json:"obligatorie"`
	Flessibili  int         `json:"flessibili"`
}

// NextPlan describes the nearest upcoming cleaning day.
type NextPlan struct {
	Date       time.Time `json:"date"`
	Weekday    string    `json:"weekday"`
	Apartments int       `json:"apartments"`
}

// Stats summarizes the plan relative to an injected "today".
type Stats struct {
	TotalDays    int       `json:"totalDays"`
	PastDays     int       `json:"pastDays"`
	UpcomingDays int       `json:"upcomingDays"`
	Next         *NextPlan `json:"next,omitempty"`
}

// ApartmentRef is the slim apartment view returned with the schedule.
type ApartmentRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Schedule is the full read-path result: the computed calendar merged with
// persisted records, plus aggregates and the apartment catalog.
type Schedule struct {
	DayPlans   []DayPlan      `json:"dayPlans"`
	Stats      Stats          `json:"stats"`
	Apartments []ApartmentRef `json:"apartments"`
}

// Italian weekday names, indexed by time.Weekday (Sunday first).
var weekdayNames = [7]string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

// WeekdayName returns the Italian name of t's weekday.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// day truncates t to UTC midnight. All schedule arithmetic is day-granular.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayKey is the canonical map key for a calendar day.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func apartmentDayKey(apartmentID int64, t time.Time) string {
	return fmt.Sprintf("%d|%s", apartmentID, dayKey(t))
}
