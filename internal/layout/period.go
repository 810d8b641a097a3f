package layout

import (
	"sort"
	"strings"
	"time"

	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// periodLayouts are the date shapes users actually type into the period
// column, most specific first.
var periodLayouts = []string{
	"2006.01.02",
	"2006-01-02",
	"2006/01/02",
	"2006.01",
	"2006-01",
	"2006",
}

// ParsePeriodStart extracts the start date from a display period such
// as "2024.01.01 - 2024.06.30". The second return is false when no
// date shape matches.
func ParsePeriodStart(period string) (time.Time, bool) {
	start := period
	for _, sep := range []string{" - ", "~"} {
		if head, _, found := strings.Cut(start, sep); found {
			start = head
			break
		}
	}
	start = strings.TrimSpace(start)

	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, start); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByStartDate returns a copy of the experiences ordered by parsed
// start date ascending. Records with unparseable periods keep their
// relative order and sort after every dated record.
func SortByStartDate(experiences []types.ExperienceRecord) []types.ExperienceRecord {
	type keyed struct {
		exp    types.ExperienceRecord
		start  time.Time
		parsed bool
	}

	items := make([]keyed, len(experiences))
	for i, exp := range experiences {
		items[i].exp = exp
		items[i].start, items[i].parsed = ParsePeriodStart(exp.Period)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].parsed != items[j].parsed {
			return items[i].parsed
		}
		if !items[i].parsed {
			return false
		}
		return items[i].start.Before(items[j].start)
	})

	sorted := make([]types.ExperienceRecord, len(items))
	for i, it := range items {
		sorted[i] = it.exp
	}
	return sorted
}
