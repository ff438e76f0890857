package schedule

import (
	"sort"
	"time"
)

// weekBucket collects one apartment's events for one Monday-start week and
// carries the computed recommended service day.
type weekBucket struct {
	ApartmentID int64
	WeekStart   time.Time
	WeekEnd     time.Time
	Fixed       map[string][]RawEvent // keyed by exact day
	Flexible    []RawEvent
	Recommended time.Time
}

// WeekStart returns the Monday of t's calendar week, at UTC midnight.
func WeekStart(t time.Time) time.Time {
	d := day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// groupByWeek buckets events per apartment per calendar week and computes,
// for each bucket, the single recommended day: the later of the latest
// fixed-event date and the latest flexible anchor. Staff visit once per
// week, as late as possible, so the most recent vacancy is covered.
func groupByWeek(events []RawEvent) []weekBucket {
	type bucketKey struct {
		apartmentID int64
		weekStart   string
	}

	buckets := make(map[bucketKey]*weekBucket)
	for _, ev := range events {
		ws := WeekStart(ev.Date)
		key := bucketKey{apartmentID: ev.ApartmentID, weekStart: dayKey(ws)}

		b, ok := buckets[key]
		if !ok {
			b = &weekBucket{
				ApartmentID: ev.ApartmentID,
				WeekStart:   ws,
				WeekEnd:     ws.AddDate(0, 0, 6),
				Fixed:       make(map[string][]RawEvent),
			}
			buckets[key] = b
		}

		if ev.Flexible {
			b.Flexible = append(b.Flexible, ev)
		} else {
			k := dayKey(ev.Date)
			b.Fixed[k] = append(b.Fixed[k], ev)
		}
	}

	result := make([]weekBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Recommended = recommendedDay(b)
		sort.Slice(b.Flexible, func(i, j int) bool {
			return b.Flexible[i].Date.Before(b.Flexible[j].Date)
		})
		result = append(result, *b)
	}

	// Map iteration order is not a sort key.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].WeekStart.Equal(result[j].WeekStart) {
			return result[i].WeekStart.Before(result[j].WeekStart)
		}
		return result[i].ApartmentID < result[j].ApartmentID
	})
	return result
}

// recommendedDay is the maximum of the latest fixed date and the latest
// flexible anchor in the bucket. Fixed events themselves never move; the
// recommended day only decides where flexible events consolidate.
func recommendedDay(b *weekBucket) time.Time {
	var latest time.Time
	for k := range b.Fixed {
		d, _ := time.Parse("2006-01-02", k)
		if d.After(latest) {
			latest = d
		}
	}
	for _, ev := range b.Flexible {
		if ev.Date.After(latest) {
			latest = ev.Date
		}
	}
	return latest
}
