package schedule

import (
	"fmt"
	"sort"
)

// parseClock splits "HH:MM" into numeric hour and minute. Returns -1, -1 for
// strings that do not parse; those sort after every valid time.
func parseClock(s string) (int, int) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return -1, -1
	}
	return h, m
}

// CompareTimes orders "HH:MM" strings by hour then minute. Numeric
// comparison avoids the lexicographic trap where "9:00" sorts after "10:00".
func CompareTimes(a, b string) int {
	ah, am := parseClock(a)
	bh, bm := parseClock(b)
	if ah == -1 {
		ah, am = 99, 99
	}
	if bh == -1 {
		bh, bm = 99, 99
	}
	if ah != bh {
		return ah - bh
	}
	return am - bm
}

// SortTimes returns a numerically sorted copy of the given time strings.
func SortTimes(times []string) []string {
	out := make([]string, len(times))
	copy(out, times)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareTimes(out[i], out[j]) < 0
	})
	return out
}

// TimeGrid generates the bookable start times between open and close. A start
// time is included while start+duration still fits before closing.
func TimeGrid(open, close string, intervalMinutes, durationMinutes int) []string {
	oh, om := parseClock(open)
	ch, cm := parseClock(close)
	if oh < 0 || ch < 0 || intervalMinutes <= 0 || durationMinutes <= 0 {
		return nil
	}

	start := oh*60 + om
	end := ch*60 + cm

	var grid []string
	for t := start; t+durationMinutes <= end; t += intervalMinutes {
		grid = append(grid, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return grid
}

// Partition splits a day's grid into the four status sets. A grid bucket is
// available when no occupancy source claims it. The occupancy sets are
// returned as reported, except that anything also present in the available
// set is dropped — a defensive de-duplication against inconsistent backend
// rows, so a bucket is never both available and unavailable.
func Partition(grid, virtual, booked, blocked []string) (available, v, b, bl []string) {
	inSet := func(list []string) map[string]bool {
		m := make(map[string]bool, len(list))
		for _, t := range list {
			m[t] = true
		}
		return m
	}

	virtualSet := inSet(virtual)
	bookedSet := inSet(booked)
	blockedSet := inSet(blocked)

	for _, t := range grid {
		if !virtualSet[t] && !bookedSet[t] && !blockedSet[t] {
			available = append(available, t)
		}
	}

	availableSet := inSet(available)
	dedup := func(list []string) []string {
		var out []string
		seen := make(map[string]bool, len(list))
		for _, t := range list {
			if !availableSet[t] && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
		return out
	}

	return SortTimes(available), SortTimes(dedup(virtual)), SortTimes(dedup(booked)), SortTimes(dedup(blocked))
}
