package schedule

import (
	"context"
	"time"
)

// MaxAutoAdvanceHops bounds the forward search so a source that forever
// reports "next available = tomorrow" cannot drive an unbounded scan.
const MaxAutoAdvanceHops = 15

// DaySource supplies per-date availability and the next open date. Service
// implements it against the database; tests substitute fakes.
type DaySource interface {
	Day(ctx context.Context, date string, duration int) (*DayAvailability, error)
	Next(ctx context.Context, fromDate string, duration int) (string, error)
}

// ResolveAvailability returns availability for the requested date and, when
// autoAdvance is set, walks forward to the first date that has openings.
//
// The walk triggers only while the current date has zero available times and
// no restriction; a restricted date is a terminal answer. Each hop asks the
// source for the next open date starting the day after the current one. The
// walk stops silently with the last (empty) day at the hop cap. Returns the
// resolved day and the number of hops taken.
func ResolveAvailability(ctx context.Context, src DaySource, date string, duration int, autoAdvance bool, loc *time.Location) (*DayAvailability, int, error) {
	day, err := src.Day(ctx, date, duration)
	if err != nil {
		return nil, 0, err
	}

	if !autoAdvance {
		return day, 0, nil
	}

	hops := 0
	for len(day.AvailableTimes) == 0 && !day.Restriction {
		if hops >= MaxAutoAdvanceHops {
			break
		}

		next, err := src.Next(ctx, NextDate(day.Date, loc), duration)
		if err != nil || next == "" || next == day.Date {
			break
		}

		advanced, err := src.Day(ctx, next, duration)
		if err != nil {
			break
		}

		day = advanced
		hops++
	}

	return day, hops, nil
}
