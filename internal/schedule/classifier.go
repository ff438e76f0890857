package schedule

import (
	"fmt"
	"sort"
	"time"

	"mareblu-backend/internal/model"
)

// Classifier walks one apartment's reservations and derives the raw
// cleaning events. GapThresholdNights is the vacancy length (in nights) at
// which a departure cleaning is deferred to just before the next arrival.
type Classifier struct {
	GapThresholdNights int
}

// Classify produces the ordered event list for one apartment. Reservations
// are assumed non-overlapping; they are sorted by check-in here so callers
// don't have to.
func (c *Classifier) Classify(apartmentID int64, reservations []model.Reservation) []RawEvent {
	if len(reservations) == 0 {
		return nil
	}

	sorted := make([]model.Reservation, len(reservations))
	copy(sorted, reservations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CheckIn.Before(sorted[j].CheckIn)
	})

	lastCheckOut := day(sorted[len(sorted)-1].CheckOut)

	events := []RawEvent{{
		ApartmentID: apartmentID,
		Date:        day(sorted[0].CheckIn).AddDate(0, 0, -1),
		Type:        model.CleaningSeasonOpen,
		Note:        "Apertura stagione",
		Flexible:    true,
	}}

	for i, r := range sorted {
		checkOut := day(r.CheckOut)

		var next *model.Reservation
		if i+1 < len(sorted) {
			next = &sorted[i+1]
		}

		switch {
		case next != nil && day(next.CheckIn).Equal(checkOut):
			// Same-day turnover: the crew must service the unit before the
			// incoming guest arrives. The only hard temporal constraint.
			events = append(events, RawEvent{
				ApartmentID: apartmentID,
				Date:        checkOut,
				Type:        model.CleaningGuestTurnover,
				Note:        "Cambio ospiti in giornata",
				Flexible:    false,
			})
		case checkOut.Equal(lastCheckOut):
			events = append(events, RawEvent{
				ApartmentID: apartmentID,
				Date:        checkOut,
				Type:        model.CleaningSeasonClose,
				Note:        "Chiusura stagione",
				Flexible:    true,
			})
		case next != nil && nightsBetween(checkOut, day(next.CheckIn)) >= c.GapThresholdNights:
			// Long vacancy: the unit sits empty, so cleaning is deferred to
			// just before the next arrival and pinned there.
			events = append(events, RawEvent{
				ApartmentID: apartmentID,
				Date:        day(next.CheckIn),
				Type:        model.CleaningPreCheckin,
				Note:        fmt.Sprintf("Pulizia pre check-in (fermo da %d notti)", nightsBetween(checkOut, day(next.CheckIn))),
				Flexible:    false,
			})
		case next != nil:
			events = append(events, RawEvent{
				ApartmentID: apartmentID,
				Date:        checkOut,
				Type:        model.CleaningPostStay,
				Note:        fmt.Sprintf("Pulizia fine soggiorno (%d notti libere)", nightsBetween(checkOut, day(next.CheckIn))),
				Flexible:    true,
			})
		}
	}

	return events
}

// nightsBetween counts the nights the unit sits empty between a check-out
// and the following check-in.
func nightsBetween(checkOut, nextCheckIn time.Time) int {
	return int(nextCheckIn.Sub(checkOut).Hours() / 24)
}
