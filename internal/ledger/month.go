package ledger

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar month, independent of any day or time of day.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" key.
func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse(monthLayout, raw)
	if err != nil {
		return Month{}, fmt.Errorf("month must be YYYY-MM: %w", err)
	}
	return MonthOf(t), nil
}

// String renders the month as "YYYY-MM".
func (m Month) String() string {
	return m.First().Format(monthLayout)
}

// First returns midnight UTC of the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns midnight UTC of the last day of the month. Day 0 of the
// following month normalises to the last day, so leap Februaries work.
func (m Month) Last() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Day returns the given day of the month, clamped into the month.
func (m Month) Day(day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := m.Last().Day(); day > last {
		day = last
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

func (m Month) Next() Month {
	return m.AddMonths(1)
}

func (m Month) AddMonths(n int) Month {
	return MonthOf(m.First().AddDate(0, n, 0))
}

func (m Month) Before(other Month) bool {
	return m.index() < other.index()
}

func (m Month) After(other Month) bool {
	return m.index() > other.index()
}

// MonthsUntil returns the number of whole calendar months from m to other.
// The result is negative when other precedes m.
func (m Month) MonthsUntil(other Month) int {
	return other.index() - m.index()
}

func (m Month) index() int {
	return m.Year*12 + int(m.Month) - 1
}

// Today truncates t to midnight UTC of its calendar date.
func Today(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
