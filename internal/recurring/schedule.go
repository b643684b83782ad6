package recurring

import (
	"time"

	"github.com/carson-networks/finora-server/internal/ledger"
)

// MaxDayOfMonth is the latest day a template transaction is dated on. Every
// month has a 28th, so no date ever needs end-of-month alignment.
const MaxDayOfMonth = 28

// DueDates returns the dates of the transactions a template still owes as of
// today, oldest first.
//
// A template that was never applied owes only the current month. Otherwise it
// owes every month after the month it was last applied in, through the
// current month. Each date falls on min(dayOfMonth, 28) of its month.
func DueDates(dayOfMonth int, lastApplied *time.Time, today time.Time) []time.Time {
	current := ledger.MonthOf(today)
	next := current
	if lastApplied != nil {
		next = ledger.MonthOf(*lastApplied).Next()
	}

	day := min(dayOfMonth, MaxDayOfMonth)

	var dates []time.Time
	for m := next; !m.After(current); m = m.Next() {
		dates = append(dates, m.Day(day))
	}
	return dates
}
