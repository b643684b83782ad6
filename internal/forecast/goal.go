package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finora-server/internal/ledger"
)

// Status classifies a goal's pace against its deadline.
type Status string

const (
	StatusOnTrack        Status = "on_track"
	StatusSlightlyBehind Status = "slightly_behind"
	StatusBehind         Status = "behind"
	StatusUnknown        Status = "unknown"
)

// slightlyBehindRatio is the share of the required pace still reported as slightly behind.
var slightlyBehindRatio = decimal.RequireFromString("0.8")

// GoalInput is the goal state a forecast is computed from.
type GoalInput struct {
	TargetAmount   decimal.Decimal
	TargetDate     time.Time
	CurrentSavings decimal.Decimal
}

// Contribution is one dated payment towards a goal.
type Contribution struct {
	Amount decimal.Decimal
	Date   time.Time
}

// maxCompletionMonths bounds how far ahead a completion date is projected.
const maxCompletionMonths = 1200

// GoalForecast is the projection for a single goal. MonthsNeeded and
// EstimatedCompletionDate are nil when completion is indeterminate.
// EstimatedCompletionDate is also nil when completion lies more than
// maxCompletionMonths ahead.
type GoalForecast struct {
	NotEnoughData           bool
	AvgMonthly              decimal.Decimal
	MonthsNeeded            *decimal.Decimal
	EstimatedCompletionDate *time.Time
	Status                  Status
	RequiredPerMonth        decimal.Decimal
	CompletionProbability   decimal.Decimal
	Series                  []MonthlyAmount
}

// ContributionSeries sums contributions per calendar month, ascending.
func ContributionSeries(contributions []Contribution) []MonthlyAmount {
	sums := make(map[ledger.Month]decimal.Decimal)
	for _, c := range contributions {
		m := ledger.MonthOf(c.Date)
		sums[m] = sums[m].Add(c.Amount)
	}

	months := make([]ledger.Month, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]MonthlyAmount, len(months))
	for i, m := range months {
		series[i] = MonthlyAmount{Month: m.String(), Amount: sums[m]}
	}
	return series
}

// Goal projects when goal will be reached given its contribution history.
// now anchors the months remaining until the target date.
func Goal(goal GoalInput, contributions []Contribution, now time.Time) GoalForecast {
	series := ContributionSeries(contributions)

	remaining := goal.TargetAmount.Sub(goal.CurrentSavings)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	monthsLeft := max(1, ledger.MonthOf(now).MonthsUntil(ledger.MonthOf(goal.TargetDate)))
	required := remaining.Div(decimal.NewFromInt(int64(monthsLeft)))

	result := GoalForecast{
		Status:           StatusUnknown,
		RequiredPerMonth: required,
		Series:           series,
	}
	if len(series) < minimumMonths {
		result.NotEnoughData = true
		return result
	}

	avg := average(series)
	result.AvgMonthly = avg
	result.Status = classify(avg, required)
	result.CompletionProbability = probability(avg, required)

	if remaining.IsZero() || avg.IsPositive() {
		monthsNeeded := decimal.Zero
		if !remaining.IsZero() {
			monthsNeeded = remaining.Div(avg)
		}
		rounded := monthsNeeded.Round(2)
		result.MonthsNeeded = &rounded
		if monthsNeeded.LessThanOrEqual(decimal.NewFromInt(maxCompletionMonths)) {
			last, _ := ledger.ParseMonth(series[len(series)-1].Month)
			completion := completionDate(last.First(), monthsNeeded)
			result.EstimatedCompletionDate = &completion
		}
	}

	return result
}

func classify(avg, required decimal.Decimal) Status {
	if avg.GreaterThanOrEqual(required) {
		return StatusOnTrack
	}
	if avg.GreaterThanOrEqual(required.Mul(slightlyBehindRatio)) {
		return StatusSlightlyBehind
	}
	return StatusBehind
}

func probability(avg, required decimal.Decimal) decimal.Decimal {
	if !required.IsPositive() {
		return hundred
	}
	p := avg.Mul(hundred).Div(required)
	if p.GreaterThan(hundred) {
		p = hundred
	}
	if p.IsNegative() {
		p = decimal.Zero
	}
	return p.Round(2)
}

// completionDate advances base by the whole months in monthsNeeded and then
// by thirty days per remaining fraction of a month.
func completionDate(base time.Time, monthsNeeded decimal.Decimal) time.Time {
	whole := monthsNeeded.IntPart()
	fraction := monthsNeeded.Sub(decimal.NewFromInt(whole))
	date := base.AddDate(0, int(whole), 0)
	days := fraction.Mul(decimal.NewFromInt(30)).IntPart()
	return date.AddDate(0, 0, int(days))
}
