package query

import (
	"time"

	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

// Period is one calendar bucket for an event's start date, computed against
// day boundaries in the viewer's time zone.
type Period string

const (
	PeriodToday       Period = "today"
	PeriodTomorrow    Period = "tomorrow"
	PeriodThisWeek    Period = "thisWeek"
	PeriodThisWeekend Period = "thisWeekend"
	PeriodNextWeek    Period = "nextWeek"
	PeriodThisMonth   Period = "thisMonth"
	PeriodNextMonth   Period = "nextMonth"
	PeriodPast        Period = "past"
	PeriodAll         Period = "all"
	// PeriodLater holds events past the nextMonth horizon; it exists only as
	// a grouping bucket, not a filter value.
	PeriodLater Period = "later"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodTomorrow, PeriodThisWeek, PeriodThisWeekend,
		PeriodNextWeek, PeriodThisMonth, PeriodNextMonth, PeriodPast, PeriodAll:
		return true
	}
	return false
}

// InPeriod reports whether start falls inside the requested bucket relative
// to now. Bucket windows are half-open [from, to). Buckets may overlap (an
// event today is also thisWeek and thisMonth); use Classify for the single
// primary bucket.
func InPeriod(start time.Time, period Period, now time.Time) bool {
	start = start.In(now.Location())
	day := utils.StartOfDay(now)
	week := utils.StartOfWeek(now)
	month := utils.StartOfMonth(now)

	switch period {
	case PeriodAll, "":
		return true
	case PeriodPast:
		return start.Before(now)
	case PeriodToday:
		return within(start, day, day.AddDate(0, 0, 1))
	case PeriodTomorrow:
		return within(start, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	case PeriodThisWeek:
		return within(start, week, week.AddDate(0, 0, 7))
	case PeriodThisWeekend:
		return within(start, week.AddDate(0, 0, 5), week.AddDate(0, 0, 7))
	case PeriodNextWeek:
		return within(start, week.AddDate(0, 0, 7), week.AddDate(0, 0, 14))
	case PeriodThisMonth:
		return within(start, month, month.AddDate(0, 1, 0))
	case PeriodNextMonth:
		return within(start, month.AddDate(0, 1, 0), month.AddDate(0, 2, 0))
	default:
		return false
	}
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// Classify assigns the single primary bucket for grouping. Precedence runs
// past, today, tomorrow, thisWeekend, thisWeek, nextWeek, thisMonth,
// nextMonth, later: the narrowest bucket wins where definitions overlap.
func Classify(event models.Event, now time.Time) Period {
	for _, period := range []Period{
		PeriodPast, PeriodToday, PeriodTomorrow, PeriodThisWeekend,
		PeriodThisWeek, PeriodNextWeek, PeriodThisMonth, PeriodNextMonth,
	} {
		if InPeriod(event.StartDate, period, now) {
			return period
		}
	}
	return PeriodLater
}
