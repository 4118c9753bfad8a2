package stats

import (
	"fmt"
	"sort"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/logger"
	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/utils"
)

// BedtimePoint is one date on the bedtime trend. Value is nil when no bedtime
// was recorded for the date; the point is kept anyway so date-axis spacing
// stays uniform.
type BedtimePoint struct {
	Date  string
	Value *float64
	Label string // human-readable HH:MM
}

// Stats holds the derived views over the full entry set: cumulative progress
// per defined goal and the recent bedtime trend.
type Stats struct {
	Progress map[string]int
	Bedtimes []BedtimePoint
}

// Compute recomputes everything from the full entry set on every invocation.
// Expected data volume is at most a few thousand daily entries, so no caching.
func Compute(entries map[string]models.DiaryEntry, goals []models.Goal) Stats {
	progress := make(map[string]int, len(goals))
	for _, g := range goals {
		progress[g.ID] = 0
	}

	// Sum per-goal day values across every entry. Values recorded under ids
	// with no matching current goal are ignored, not summed anywhere.
	for _, entry := range entries {
		for goalID, val := range entry.Goals {
			if _, ok := progress[goalID]; ok {
				progress[goalID] += val
			}
		}
	}

	// Lexicographic sort is chronological for YYYY-MM-DD dates. Keys that do
	// not parse as dates can only come from a hand-edited store; they are
	// dropped from the trend rather than plotted.
	dates := make([]string, 0, len(entries))
	for date := range entries {
		if !utils.ValidateDateFormat(date) {
			logger.Warn("skipping entry with malformed date key", "date", date)
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) > constants.TrendWindowDays {
		dates = dates[len(dates)-constants.TrendWindowDays:]
	}

	points := make([]BedtimePoint, 0, len(dates))
	for _, date := range dates {
		point := BedtimePoint{Date: date}
		if bt := entries[date].BedTime; bt != nil {
			v := BedtimeScalar(bt.Hour(), bt.Minute())
			point.Value = &v
			point.Label = utils.FormatClock(*bt)
		}
		points = append(points, point)
	}

	return Stats{Progress: progress, Bedtimes: points}
}

// BedtimeScalar converts a clock time to a linear scale for plotting:
// 20:00 -> 20.0, 00:00 -> 24.0, 02:00 -> 26.0. Folding the post-midnight
// hours onto the tail of the evening keeps a night scale continuous from
// evening through next dawn.
func BedtimeScalar(hour, minute int) float64 {
	v := float64(hour) + float64(minute)/60
	if v < constants.DayRolloverHour {
		v += 24
	}
	return v
}

// AxisLabel formats a folded scalar back into a clock hour, e.g. 26.0 -> "02:00".
func AxisLabel(v float64) string {
	h := int(v)
	if h >= 24 {
		h -= 24
	}
	return fmt.Sprintf("%02d:00", h)
}
