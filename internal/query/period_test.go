package query_test

import (
	"testing"
	"time"

	"fomo-app/internal/models"
	"fomo-app/internal/query"

	"github.com/stretchr/testify/assert"
)

// now is fixed to a Wednesday so the week windows are unambiguous:
// week runs Mon Mar 9 through Sun Mar 15, weekend is Sat 14 and Sun 15.
var now = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func TestInPeriodBuckets(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		period query.Period
		want   bool
	}{
		{"today matches same day later", at(11, 20), query.PeriodToday, true},
		{"today matches same day earlier", at(11, 8), query.PeriodToday, true},
		{"today rejects tomorrow", at(12, 10), query.PeriodToday, false},
		{"tomorrow matches next day", at(12, 10), query.PeriodTomorrow, true},
		{"tomorrow rejects day after", at(13, 10), query.PeriodTomorrow, false},
		{"thisWeek spans monday to sunday", at(9, 0), query.PeriodThisWeek, true},
		{"thisWeek includes sunday", at(15, 23), query.PeriodThisWeek, true},
		{"thisWeek rejects next monday", at(16, 0), query.PeriodThisWeek, false},
		{"thisWeekend starts saturday", at(14, 0), query.PeriodThisWeekend, true},
		{"thisWeekend rejects friday", at(13, 23), query.PeriodThisWeekend, false},
		{"nextWeek starts next monday", at(16, 0), query.PeriodNextWeek, true},
		{"nextWeek rejects this sunday", at(15, 23), query.PeriodNextWeek, false},
		{"thisMonth includes start of month", at(1, 0), query.PeriodThisMonth, true},
		{"thisMonth rejects april", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), query.PeriodThisMonth, false},
		{"nextMonth matches april", time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), query.PeriodNextMonth, true},
		{"past matches anything before now", at(11, 10), query.PeriodPast, true},
		{"past rejects the future", at(11, 20), query.PeriodPast, false},
		{"all matches everything", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), query.PeriodAll, true},
		{"empty period matches everything", at(2, 0), query.Period(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.InPeriod(tt.start, tt.period, now))
		})
	}
}

func TestValidRejectsLater(t *testing.T) {
	assert.True(t, query.PeriodToday.Valid())
	assert.True(t, query.PeriodAll.Valid())

	// later is a grouping bucket only, never a filter value.
	assert.False(t, query.PeriodLater.Valid())
	assert.False(t, query.Period("someday").Valid())
}

func TestClassifyPicksNarrowestBucket(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  query.Period
	}{
		{"earlier today is past", at(11, 10), query.PeriodPast},
		{"later today is today, not thisWeek", at(11, 20), query.PeriodToday},
		{"thursday is tomorrow", at(12, 10), query.PeriodTomorrow},
		{"friday is thisWeek", at(13, 10), query.PeriodThisWeek},
		{"saturday is thisWeekend, not thisWeek", at(14, 10), query.PeriodThisWeekend},
		{"next monday is nextWeek", at(16, 10), query.PeriodNextWeek},
		{"end of march is thisMonth", at(30, 10), query.PeriodThisMonth},
		{"april is nextMonth", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), query.PeriodNextMonth},
		{"june falls through to later", time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), query.PeriodLater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := models.Event{StartDate: tt.start}
			assert.Equal(t, tt.want, query.Classify(event, now))
		})
	}
}
