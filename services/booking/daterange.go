package booking

import (
	"time"
)

// DateLayout is the wire format for calendar dates. Bookings carry no
// time-of-day component; both endpoints of a range are inclusive.
const DateLayout = "2006-01-02"

// DateRange is an inclusive start/end calendar-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from calendar dates, rejecting inverted ranges.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return DateRange{}, &InvalidRangeError{Reason: "end date must be on or after start date"}
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange parses "YYYY-MM-DD" endpoints and validates their order.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return DateRange{}, &InvalidRangeError{Reason: "invalid start date format, expected YYYY-MM-DD"}
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return DateRange{}, &InvalidRangeError{Reason: "invalid end date format, expected YYYY-MM-DD"}
	}
	return NewDateRange(s, e)
}

// DaysInclusive returns the billable day count. A single-day range counts as 1.
func (r DateRange) DaysInclusive() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

// Overlaps reports whether the two closed intervals share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// StartString returns the inclusive start in wire format.
func (r DateRange) StartString() string {
	return r.Start.Format(DateLayout)
}

// EndString returns the inclusive end in wire format.
func (r DateRange) EndString() string {
	return r.End.Format(DateLayout)
}

func (r DateRange) String() string {
	return r.StartString() + ".." + r.EndString()
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
