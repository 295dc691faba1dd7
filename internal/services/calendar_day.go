package services

import "time"

// CalendarDay is the half-open interval [Start, End) of one local day.
type CalendarDay struct {
	Start time.Time
	End   time.Time
}

// CalendarDayOf returns the day containing instant as seen from location.
// A nil location means UTC.
func CalendarDayOf(instant time.Time, location *time.Location) CalendarDay {
	if location == nil {
		location = time.UTC
	}
	year, month, day := instant.In(location).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, location)
	return CalendarDay{Start: start, End: start.AddDate(0, 0, 1)}
}
