package tracking

import "time"

// streakFrom counts the consecutive completed days ending at today (or, when
// today itself has not been completed yet, at yesterday — an unacted "today"
// never breaks a run). completed holds day-truncated dates. The result is the
// number of back-to-back completed days; the first gap stops the walk.
func streakFrom(completed map[time.Time]bool, today time.Time) int {
	day := Day(today)
	if !completed[day] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for completed[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// bestRun returns the longest consecutive completed run within the given
// dates (used for range aggregations).
func bestRun(completed map[time.Time]bool) int {
	best := 0
	for day := range completed {
		// Only start counting at the beginning of a run
		if completed[day.AddDate(0, 0, -1)] {
			continue
		}
		run := 0
		for d := day; completed[d]; d = d.AddDate(0, 0, 1) {
			run++
		}
		if run > best {
			best = run
		}
	}
	return best
}

// completedSet builds the day-keyed set the walkers consume.
func completedSet(dates []time.Time) map[time.Time]bool {
	set := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		set[Day(d)] = true
	}
	return set
}

// latestCompleted returns the most recent completed date, or nil.
func latestCompleted(dates []time.Time) *time.Time {
	var latest *time.Time
	for _, d := range dates {
		day := Day(d)
		if latest == nil || day.After(*latest) {
			v := day
			latest = &v
		}
	}
	return latest
}
