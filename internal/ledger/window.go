package ledger

import "time"

// Window is an inclusive date window. A nil bound is unbounded on that side.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Empty reports whether the window can never contain a date. Bounds on the
// same calendar day never make it empty, whatever their time of day.
func (w Window) Empty() bool {
	return w.Start != nil && w.End != nil && Today(*w.Start).After(Today(*w.End))
}

// Dates returns the window with both bounds truncated to their UTC date.
func (w Window) Dates() Window {
	var out Window
	if w.Start != nil {
		start := Today(*w.Start)
		out.Start = &start
	}
	if w.End != nil {
		end := Today(*w.End)
		out.End = &end
	}
	return out
}

// Contains reports whether date falls inside the window, comparing calendar dates.
func (w Window) Contains(date time.Time) bool {
	d := Today(date)
	if w.Start != nil && d.Before(Today(*w.Start)) {
		return false
	}
	if w.End != nil && d.After(Today(*w.End)) {
		return false
	}
	return true
}

// MonthWindow covers every day of m.
func MonthWindow(m Month) Window {
	first, last := m.First(), m.Last()
	return Window{Start: &first, End: &last}
}
