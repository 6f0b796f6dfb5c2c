package boataround

import (
	"time"

	"boataround-scraper/models"
)

// SaturdaysBetween returns every Saturday in [start, end] inclusive, in
// ascending order. Comparison is by calendar day; any time-of-day component
// on the inputs is ignored.
func SaturdaysBetween(start, end time.Time) []time.Time {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var saturdays []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday {
			saturdays = append(saturdays, d)
		}
	}
	return saturdays
}

// WeeklyWindows pairs consecutive Saturdays in [start, end] into
// checkIn/checkOut windows. A range holding fewer than two Saturdays yields
// no windows.
func WeeklyWindows(start, end time.Time) []models.DateWindow {
	saturdays := SaturdaysBetween(start, end)
	if len(saturdays) < 2 {
		return nil
	}

	windows := make([]models.DateWindow, 0, len(saturdays)-1)
	for i := 0; i < len(saturdays)-1; i++ {
		windows = append(windows, models.DateWindow{
			CheckIn:  saturdays[i],
			CheckOut: saturdays[i+1],
		})
	}
	return windows
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
