package folio

import (
	"fmt"
	"strings"
)

// Resolution is the granularity at which a date range is sampled for charting.
type Resolution int

const (
	Daily Resolution = iota
	Weekly
	Monthly
	Yearly
)

func (r Resolution) String() string {
	switch r {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return "periodic"
	}
}

// LabelFormat returns the time layout used to label a bucket at this resolution.
func (r Resolution) LabelFormat() string {
	switch r {
	case Yearly:
		return "2006"
	case Monthly:
		return "2006-01"
	default:
		// Weekly buckets are labelled like daily ones.
		return DateFormat
	}
}

// ParseResolution parses a string into a Resolution.
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown resolution %q", s)
	}
}
