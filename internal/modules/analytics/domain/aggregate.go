package domain

import (
	"math"
	"time"

	"stillpoint/internal/platform/clock"
)

const LabelLayout = "Jan 2"

// Upper bounds for series lengths.
const (
	MaxDays  = 366
	MaxWeeks = 104
)

// Entry is one session as seen by aggregation. HasTime is false when the
// stored timestamp could not be parsed; such entries only count toward
// totals that ignore time.
type Entry struct {
	Duration int
	At       time.Time
	HasTime  bool
}

type Bucket struct {
	Label   string
	Start   time.Time
	Seconds int
	Minutes int
}

func Minutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}

func Total(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Duration
	}
	return total
}

// Between sums durations of entries in [from, to]. Entries stamped after to
// come from a skewed clock and are left out.
func Between(entries []Entry, from, to time.Time) int {
	total := 0
	for _, e := range entries {
		if e.HasTime && !e.At.Before(from) && !e.At.After(to) {
			total += e.Duration
		}
	}
	return total
}

// Average is rounded to whole seconds; 0 for an empty log.
func Average(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	return int(math.Round(float64(Total(entries)) / float64(len(entries))))
}

func Longest(entries []Entry) int {
	longest := 0
	for _, e := range entries {
		if e.Duration > longest {
			longest = e.Duration
		}
	}
	return longest
}

func sumByDay(entries []Entry, loc *time.Location) map[time.Time]int {
	byDay := map[time.Time]int{}
	for _, e := range entries {
		if e.HasTime {
			byDay[clock.Day(e.At.In(loc))] += e.Duration
		}
	}
	return byDay
}

// Daily returns one bucket per calendar day ending today, oldest first.
func Daily(entries []Entry, now time.Time, days int) []Bucket {
	byDay := sumByDay(entries, now.Location())
	today := clock.Day(now)
	out := make([]Bucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		sec := byDay[day]
		out = append(out, Bucket{Label: day.Format(LabelLayout), Start: day, Seconds: sec, Minutes: Minutes(sec)})
	}
	return out
}

// Weekly returns non-overlapping seven-day windows, the newest ending today,
// oldest first. Each bucket is labelled with its first day.
func Weekly(entries []Entry, now time.Time, weeks int) []Bucket {
	byDay := sumByDay(entries, now.Location())
	today := clock.Day(now)
	out := make([]Bucket, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		end := today.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -6)
		sec := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			sec += byDay[d]
		}
		out = append(out, Bucket{Label: start.Format(LabelLayout), Start: start, Seconds: sec, Minutes: Minutes(sec)})
	}
	return out
}

// LongestStreak is the longest run of consecutive calendar days in loc with
// at least one session.
func LongestStreak(entries []Entry, loc *time.Location) int {
	byDay := sumByDay(entries, loc)
	best := 0
	for day := range byDay {
		if _, ok := byDay[day.AddDate(0, 0, -1)]; ok {
			continue
		}
		run := 1
		for next := day.AddDate(0, 0, 1); ; next = next.AddDate(0, 0, 1) {
			if _, ok := byDay[next]; !ok {
				break
			}
			run++
		}
		if run > best {
			best = run
		}
	}
	return best
}
