// Package stats computes the dashboard aggregates over loaded workouts.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/trackit/internal/model"
)

// WeekCount is one bar in the weekly frequency chart.
type WeekCount struct {
	Label string // start of week, dd.mm
	Count int
}

// TypeCount is one slice of the per-type distribution.
type TypeCount struct {
	Type  string
	Count int
}

// Summary bundles the dashboard numbers.
type Summary struct {
	Total     int
	ThisWeek  int
	AvgRPE    float64 // 0 when no sets exist
	ByType    []TypeCount
	LastWeeks []WeekCount
}

// weeklyWindow is how many trailing weeks the frequency chart shows.
const weeklyWindow = 8

// Summarize computes all dashboard aggregates at the reference time. Weeks
// start on Monday.
func Summarize(workouts []*model.Workout, now time.Time) Summary {
	s := Summary{Total: len(workouts)}

	weekStart := startOfWeek(now)
	byType := make(map[string]int)
	totalRPE, totalSets := 0, 0

	for _, w := range workouts {
		if !w.Date.Before(weekStart) {
			s.ThisWeek++
		}
		ty := w.Type
		if ty == "" {
			ty = "Andere"
		}
		byType[ty]++
		for _, ex := range w.Exercises {
			for _, set := range ex.Sets {
				totalRPE += set.RPE
				totalSets++
			}
		}
	}
	if totalSets > 0 {
		s.AvgRPE = float64(totalRPE) / float64(totalSets)
	}

	types := make([]string, 0, len(byType))
	for ty := range byType {
		types = append(types, ty)
	}
	sort.Strings(types)
	for _, ty := range types {
		s.ByType = append(s.ByType, TypeCount{Type: ty, Count: byType[ty]})
	}

	for i := weeklyWindow - 1; i >= 0; i-- {
		ws := weekStart.AddDate(0, 0, -7*i)
		we := ws.AddDate(0, 0, 7)
		count := 0
		for _, w := range workouts {
			if !w.Date.Before(ws) && w.Date.Before(we) {
				count++
			}
		}
		s.LastWeeks = append(s.LastWeeks, WeekCount{
			Label: fmt.Sprintf("%02d.%02d", ws.Day(), int(ws.Month())),
			Count: count,
		})
	}

	return s
}

// WorkoutAvgRPE averages RPE across one workout including its finisher:
// a NORMAL finisher contributes per set, AMRAP/EMOM entries contribute
// once each. Returns (0, false) when there is nothing to average.
func WorkoutAvgRPE(w *model.Workout) (float64, bool) {
	total, n := 0, 0
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			total += set.RPE
			n++
		}
	}
	if w.Finisher != nil {
		for _, e := range w.Finisher.Entries {
			if w.Finisher.Type == model.FinisherNormal {
				for _, set := range e.Sets {
					total += set.RPE
					n++
				}
			} else {
				total += e.RPE
				n++
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(total) / float64(n), true
}

func startOfWeek(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := today.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return today.AddDate(0, 0, -int(weekday-time.Monday))
}
