package schedule

import (
	"log"
	"sort"
	"strings"
	"time"

	"mareblu-backend/internal/model"
)

// merger reconciles week buckets with persisted cleaning records into the
// final per-day calendar.
type merger struct {
	names  map[int64]string
	stored map[string]model.Cleaning
	// records consumed by a computed entry; leftovers are emitted as-is
	consumed map[string]bool
	// (apartment, day) pairs already holding an entry
	occupied map[string]bool
	entries  []PlanEntry
}

func newMerger(apartments []model.Apartment, records []model.Cleaning) *merger {
	m := &merger{
		names:    make(map[int64]string, len(apartments)),
		stored:   make(map[string]model.Cleaning, len(records)),
		consumed: make(map[string]bool),
		occupied: make(map[string]bool),
	}
	for _, a := range apartments {
		m.names[a.ID] = a.Name
	}
	for _, rec := range records {
		if rec.Status == model.CleaningAnnullata {
			continue
		}
		if rec.Date.IsZero() {
			log.Printf("Warning: cleaning record %d has no date; skipping it in the merge", rec.ID)
			continue
		}
		m.stored[apartmentDayKey(rec.ApartmentID, rec.Date)] = rec
	}
	return m
}

// merge produces the chronological day plans and their aggregate stats.
// Today only influences the past/upcoming split; it is injected so tests
// can fix it.
func merge(buckets []weekBucket, apartments []model.Apartment, records []model.Cleaning, today time.Time) ([]DayPlan, Stats) {
	m := newMerger(apartments, records)

	// Fixed events keep their exact date, always.
	for _, b := range buckets {
		for _, evs := range b.Fixed {
			for _, ev := range evs {
				m.addFixed(ev)
			}
		}
	}

	// Flexible events collapse onto the bucket's recommended day. A fixed
	// entry already on that day absorbs them without a duplicate row.
	for _, b := range buckets {
		m.addFlexible(b)
	}

	m.addLeftoverRecords()

	plans := m.dayPlans()
	return plans, computeStats(plans, today)
}

func (m *merger) addFixed(ev RawEvent) {
	key := apartmentDayKey(ev.ApartmentID, ev.Date)
	if m.occupied[key] {
		return
	}
	m.occupied[key] = true

	entry := PlanEntry{
		ApartmentID:   ev.ApartmentID,
		ApartmentName: m.names[ev.ApartmentID],
		Date:          ev.Date,
		Type:          ev.Type,
		Note:          ev.Note,
		Obligatoria:   true,
		Suggested:     true,
	}
	m.overlayRecord(&entry, key)
	m.entries = append(m.entries, entry)
}

func (m *merger) addFlexible(b weekBucket) {
	if len(b.Flexible) == 0 {
		return
	}

	key := apartmentDayKey(b.ApartmentID, b.Recommended)
	if m.occupied[key] {
		// Same apartment, same day, fixed entry already there: the slot is
		// covered, the flexible duplicate is dropped.
		return
	}
	m.occupied[key] = true

	// Events sorted by anchor; the latest one names the entry, notes of all
	// merged events are kept.
	last := b.Flexible[len(b.Flexible)-1]
	notes := make([]string, 0, len(b.Flexible))
	spostata := false
	for _, ev := range b.Flexible {
		if ev.Note != "" {
			notes = append(notes, ev.Note)
		}
		if !ev.Date.Equal(b.Recommended) {
			spostata = true
		}
	}

	entry := PlanEntry{
		ApartmentID:   b.ApartmentID,
		ApartmentName: m.names[b.ApartmentID],
		Date:          b.Recommended,
		Type:          last.Type,
		Note:          strings.Join(notes, "; "),
		Obligatoria:   false,
		Spostata:      spostata,
		Suggested:     true,
	}
	if spostata {
		original := b.Flexible[0].Date
		entry.OriginalDate = &original
	}
	m.overlayRecord(&entry, key)
	m.entries = append(m.entries, entry)
}

// addLeftoverRecords emits persisted records no computed event claimed, so
// manual entries stay visible on the calendar.
func (m *merger) addLeftoverRecords() {
	keys := make([]string, 0, len(m.stored))
	for key := range m.stored {
		if !m.consumed[key] && !m.occupied[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		rec := m.stored[key]
		m.occupied[key] = true
		m.entries = append(m.entries, PlanEntry{
			ApartmentID:   rec.ApartmentID,
			ApartmentName: m.names[rec.ApartmentID],
			Date:          day(rec.Date),
			Type:          rec.Type,
			Note:          rec.Note,
			Suggested:     false,
			RecordID:      rec.ID,
			Status:        rec.Status,
			CheckoutTime:  rec.CheckoutTime,
			CompletedAt:   rec.CompletedAt,
		})
	}
}

// overlayRecord folds a persisted record into a computed entry: the entry
// keeps its computed place but carries the record's id, status and fields.
func (m *merger) overlayRecord(entry *PlanEntry, key string) {
	rec, ok := m.stored[key]
	if !ok {
		return
	}
	m.consumed[key] = true
	entry.Suggested = false
	entry.RecordID = rec.ID
	entry.Status = rec.Status
	entry.CheckoutTime = rec.CheckoutTime
	entry.CompletedAt = rec.CompletedAt
	if rec.Note != "" {
		entry.Note = rec.Note
	}
}

// dayPlans groups entries by date with explicit sort keys: date, then
// apartment id within a day.
func (m *merger) dayPlans() []DayPlan {
	byDay := make(map[string][]PlanEntry)
	for _, e := range m.entries {
		k := dayKey(e.Date)
		byDay[k] = append(byDay[k], e)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	plans := make([]DayPlan, 0, len(keys))
	for _, k := range keys {
		entries := byDay[k]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].ApartmentID < entries[j].ApartmentID
		})

		plan := DayPlan{
			Date:      entries[0].Date,
			Weekday:   WeekdayName(entries[0].Date),
			Cleanings: entries,
		}
		for _, e := range entries {
			if e.Obligatoria {
				plan.Obligatorie++
			} else {
				plan.Flessibili++
			}
		}
		plans = append(plans, plan)
	}
	return plans
}

func computeStats(plans []DayPlan, today time.Time) Stats {
	stats := Stats{TotalDays: len(plans)}
	cutoff := day(today)
	for i := range plans {
		if plans[i].Date.Before(cutoff) {
			stats.PastDays++
			continue
		}
		stats.UpcomingDays++
		if stats.Next == nil {
			stats.Next = &NextPlan{
				Date:       plans[i].Date,
				Weekday:    plans[i].Weekday,
				Apartments: len(plans[i].Cleanings),
			}
		}
	}
	return stats
}
