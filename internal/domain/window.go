package domain

import "time"

// TimeWindow is a named slice of the local day used to scope arrival queries.
type TimeWindow struct {
	// Name is the machine-readable window identifier used in query parameters
	Name string `json:"name"`

	// DisplayName is the human-readable label for the front-end
	DisplayName string `json:"displayName"`

	// Start is the local start time as "HH:MM" (inclusive)
	Start string `json:"start"`

	// End is the local end time as "HH:MM" (exclusive)
	End string `json:"end"`

	// Description explains the window to the front-end
	Description string `json:"description"`
}

// WindowCurrent is the dynamic window spanning roughly two hours either side
// of now. Unlike the fixed windows its bounds are computed per request.
const WindowCurrent = "current"

// fixedWindows are the static named windows, in display order.
var fixedWindows = []TimeWindow{
	{Name: "early_morning", DisplayName: "Early Morning", Start: "04:00", End: "08:00", Description: "Arrivals between 04:00 and 08:00"},
	{Name: "morning", DisplayName: "Morning", Start: "08:00", End: "12:00", Description: "Arrivals between 08:00 and 12:00"},
	{Name: "afternoon", DisplayName: "Afternoon", Start: "12:00", End: "17:00", Description: "Arrivals between 12:00 and 17:00"},
	{Name: "evening", DisplayName: "Evening", Start: "17:00", End: "21:00", Description: "Arrivals between 17:00 and 21:00"},
	{Name: "night", DisplayName: "Night", Start: "21:00", End: "04:00", Description: "Arrivals between 21:00 and 04:00"},
}

// currentWindowRadius is how far either side of now the dynamic window reaches.
const currentWindowRadius = 2 * time.Hour

// LookupWindow returns the fixed window with the given name. The dynamic
// "current" window is not found here; use CurrentWindow with a reference time.
func LookupWindow(name string) (TimeWindow, bool) {
	for _, w := range fixedWindows {
		if w.Name == name {
			return w, true
		}
	}
	return TimeWindow{}, false
}

// AllWindowNames returns the names of every selectable window, including the
// dynamic "current" window.
func AllWindowNames() []string {
	names := make([]string, 0, len(fixedWindows)+1)
	for _, w := range fixedWindows {
		names = append(names, w.Name)
	}
	return append(names, WindowCurrent)
}

// CurrentWindow builds the dynamic window around the given local time.
func CurrentWindow(now time.Time) TimeWindow {
	start := now.Add(-currentWindowRadius)
	end := now.Add(currentWindowRadius)
	return TimeWindow{
		Name:        WindowCurrent,
		DisplayName: "Current",
		Start:       start.Format("15:04"),
		End:         end.Format("15:04"),
		Description: "Arrivals within two hours of now",
	}
}

// Bounds resolves the window to concrete instants on the given local day.
// Windows that wrap past midnight (night) end on the following day. For the
// dynamic "current" window call CurrentBounds instead.
func (w TimeWindow) Bounds(day time.Time) (time.Time, time.Time) {
	start := atClock(day, w.Start)
	end := atClock(day, w.End)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// CurrentBounds returns the instants of the dynamic window around now.
func CurrentBounds(now time.Time) (time.Time, time.Time) {
	return now.Add(-currentWindowRadius), now.Add(currentWindowRadius)
}

// atClock places an "HH:MM" clock reading on the given day in its location.
func atClock(day time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
