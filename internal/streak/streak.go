// Package streak derives consecutive-study-day streaks from study days.
package streak

import (
	"sort"

	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/studylog"
)

type Result struct {
	Current int
	Longest int
}

// Calculate returns the current and longest streaks as of today.
// The current streak may start yesterday so that a day not logged yet does not break it.
func Calculate(days []studyday.DayKey, today studyday.DayKey) Result {
	set := make(map[studyday.DayKey]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}

	return Result{
		Current: current(set, today),
		Longest: longest(set),
	}
}

// FromRecords returns the study days of records.
func FromRecords(clock *studyday.Clock, records []studylog.Record) []studyday.DayKey {
	days := make([]studyday.DayKey, len(records))
	for i, r := range records {
		days[i] = clock.StudyDay(r.StartedAt)
	}
	return days
}

// MinutesSince sums the study minutes of records logged on or after the study day from.
func MinutesSince(clock *studyday.Clock, records []studylog.Record, from studyday.DayKey) int {
	total := 0
	for _, r := range records {
		if clock.StudyDay(r.StartedAt) >= from {
			total += r.StudyMinutes
		}
	}
	return total
}

func current(set map[studyday.DayKey]struct{}, today studyday.DayKey) int {
	start := today
	if _, ok := set[start]; !ok {
		start = today - 1
		if _, ok := set[start]; !ok {
			return 0
		}
	}

	count := 0
	for d := start; ; d-- {
		if _, ok := set[d]; !ok {
			break
		}
		count++
	}
	return count
}

func longest(set map[studyday.DayKey]struct{}) int {
	sorted := make([]studyday.DayKey, 0, len(set))
	for d := range set {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	best, run := 0, 0
	for i, d := range sorted {
		if i > 0 && d == sorted[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
