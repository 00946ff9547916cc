package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource scripts per-date availability for resolver tests.
type fakeSource struct {
	days     map[string]*DayAvailability
	dayCalls int
	// alwaysTomorrow makes Next report the day after from_date forever.
	alwaysTomorrow bool
	loc            *time.Location
}

func (f *fakeSource) Day(_ context.Context, date string, _ int) (*DayAvailability, error) {
	f.dayCalls++
	if d, ok := f.days[date]; ok {
		return d, nil
	}
	return &DayAvailability{Date: date, AvailableTimes: []string{}}, nil
}

func (f *fakeSource) Next(_ context.Context, fromDate string, _ int) (string, error) {
	if f.alwaysTomorrow {
		return fromDate, nil
	}
	for d := fromDate; d <= "2025-12-31"; d = NextDate(d, f.loc) {
		if day, ok := f.days[d]; ok && !day.Restriction && len(day.AvailableTimes) > 0 {
			return d, nil
		}
	}
	return "", nil
}

func TestResolveAvailability_NoAdvanceWhenSlotsExist(t *testing.T) {
	loc := mustLoc(t)
	src := &fakeSource{
		loc: loc,
		days: map[string]*DayAvailability{
			"2025-06-02": {Date: "2025-06-02", AvailableTimes: []string{"10:00", "11:00"}},
		},
	}

	day, hops, err := ResolveAvailability(context.Background(), src, "2025-06-02", 60, true, loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", day.Date)
	assert.Zero(t, hops)
}

func TestResolveAvailability_AdvancesToOpenDate(t *testing.T) {
	loc := mustLoc(t)
	src := &fakeSource{
		loc: loc,
		days: map[string]*DayAvailability{
			"2025-06-02": {Date: "2025-06-02", AvailableTimes: []string{}},
			"2025-06-05": {Date: "2025-06-05", AvailableTimes: []string{"14:00"}},
		},
	}

	day, hops, err := ResolveAvailability(context.Background(), src, "2025-06-02", 60, true, loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-05", day.Date)
	assert.Equal(t, 1, hops)
	assert.Equal(t, []string{"14:00"}, day.AvailableTimes)
}

func TestResolveAvailability_AutoAdvanceOff(t *testing.T) {
	loc := mustLoc(t)
	src := &fakeSource{
		loc: loc,
		days: map[string]*DayAvailability{
			"2025-06-02": {Date: "2025-06-02", AvailableTimes: []string{}},
			"2025-06-05": {Date: "2025-06-05", AvailableTimes: []string{"14:00"}},
		},
	}

	day, hops, err := ResolveAvailability(context.Background(), src, "2025-06-02", 60, false, loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", day.Date)
	assert.Zero(t, hops)
	assert.Empty(t, day.AvailableTimes)
}

func TestResolveAvailability_RestrictionSuppressesAdvance(t *testing.T) {
	loc := mustLoc(t)
	src := &fakeSource{
		loc: loc,
		days: map[string]*DayAvailability{
			"2025-06-02": {
				Date:           "2025-06-02",
				AvailableTimes: []string{},
				Restriction:    true,
				Message:        "마감",
			},
			"2025-06-03": {Date: "2025-06-03", AvailableTimes: []string{"10:00"}},
		},
	}

	day, hops, err := ResolveAvailability(context.Background(), src, "2025-06-02", 60, true, loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", day.Date, "restricted date is a terminal answer")
	assert.True(t, day.Restriction)
	assert.Equal(t, "마감", day.Message)
	assert.Zero(t, hops)
}

func TestResolveAvailability_StopsAtHopCap(t *testing.T) {
	loc := mustLoc(t)
	// Pathological source: every date is empty and the next open date is
	// always reported as tomorrow.
	src := &fakeSource{loc: loc, alwaysTomorrow: true, days: map[string]*DayAvailability{}}

	day, hops, err := ResolveAvailability(context.Background(), src, "2025-06-02", 60, true, loc)
	require.NoError(t, err, "hop cap is a silent stop, not an error")
	assert.Equal(t, MaxAutoAdvanceHops, hops)
	assert.Empty(t, day.AvailableTimes)
	// initial fetch plus one per hop
	assert.Equal(t, MaxAutoAdvanceHops+1, src.dayCalls)
}

func TestResolveAvailability_NoNextDateStops(t *testing.T) {
	loc := mustLoc(t)
	// Every date is empty and Next never finds an open one, so the walk
	// ends immediately on the first empty answer.
	src := &fakeSource{loc: loc, days: map[string]*DayAvailability{
		"2025-06-02": {Date: "2025-06-02", AvailableTimes: []string{}},
	}}

	day, hops, err := ResolveAvailability(context.Background(), src, "2025-06-02", 60, true, loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", day.Date)
	assert.Zero(t, hops)
}
