package folio

import (
	"fmt"
	"time"
)

// Bucket is one sampled point of a date range: a snapped calendar date and its
// human label at the chosen resolution.
type Bucket struct {
	Label string
	On    Date
}

// elapsedYears counts whole years between start and end using
// last-day-of-year anchors: a year counts when its December 31st falls inside
// the range.
func elapsedYears(start, end Date) int {
	n := 0
	for a := start.EndOfYear(); !a.After(end); a = NewDate(a.Year()+2, time.January, 0) {
		n++
	}
	return n
}

// elapsedMonths counts whole months, anchored on last days of months.
func elapsedMonths(start, end Date) int {
	n := 0
	for a := start.EndOfMonth(); !a.After(end); a = NewDate(a.Year(), a.Month()+2, 0) {
		n++
	}
	return n
}

// elapsedWeeks counts whole weeks, anchored on Fridays.
func elapsedWeeks(start, end Date) int {
	n := 0
	for a := start.NextFriday(); !a.After(end); a = a.Add(7) {
		n++
	}
	return n
}

// resolutionFor selects the bucket resolution and step for a date range.
// Tiers are tried in priority order: years, months, weeks, days. Within a
// tier the step widens as the range grows, keeping the bucket count bounded.
func resolutionFor(start, end Date) (Resolution, int) {
	if years := elapsedYears(start, end); years >= 5 {
		switch {
		case years <= 30:
			return Yearly, 1
		case years <= 60:
			return Yearly, 2
		case years <= 120:
			return Yearly, 3
		default:
			return Yearly, 4
		}
	}
	if months := elapsedMonths(start, end); months >= 5 {
		if months <= 30 {
			return Monthly, 1
		}
		return Monthly, 2
	}
	if weeks := elapsedWeeks(start, end); weeks >= 5 {
		if weeks <= 30 {
			return Weekly, 1
		}
		return Weekly, 2
	}
	if start.DaysUntil(end) <= 30 {
		return Daily, 1
	}
	return Daily, 2
}

// BucketRange splits the [start, end] range into an ordered list of buckets.
//
// Boundaries are anchored to the last day of the year, the last day of the
// month, or the next Friday, depending on the resolution, and generated by
// repeated stepping. The final boundary is forced to end when the generated
// sequence undershoots it, and every boundary falling on a weekend is snapped
// backward to the preceding Friday.
func BucketRange(start, end Date) ([]Bucket, Resolution, error) {
	if end.Before(start) {
		return nil, Daily, fmt.Errorf("invalid range: %s is after %s", start, end)
	}

	res, step := resolutionFor(start, end)

	var bounds []Date
	switch res {
	case Yearly:
		for a := start.EndOfYear(); !a.After(end); a = NewDate(a.Year()+step+1, time.January, 0) {
			bounds = append(bounds, a)
		}
	case Monthly:
		for a := start.EndOfMonth(); !a.After(end); a = NewDate(a.Year(), a.Month()+time.Month(step)+1, 0) {
			bounds = append(bounds, a)
		}
	case Weekly:
		for a := start.NextFriday(); !a.After(end); a = a.Add(7 * step) {
			bounds = append(bounds, a)
		}
	case Daily:
		for a := start; !a.After(end); a = a.Add(step) {
			bounds = append(bounds, a)
		}
	}
	if len(bounds) == 0 || bounds[len(bounds)-1] != end {
		bounds = append(bounds, end)
	}

	buckets := make([]Bucket, 0, len(bounds))
	for _, b := range bounds {
		snapped := b.PreviousTradingDay()
		buckets = append(buckets, Bucket{Label: snapped.Format(res.LabelFormat()), On: snapped})
	}
	return buckets, res, nil
}
