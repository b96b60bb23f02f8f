/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package elo

import (
	"sort"
	"time"
)

// Date layouts accepted by the match ordering, tried in order: full
// date-time forms first, then a plain calendar date.
var orderLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// dateKey parses a match date for ordering purposes. The second return
// is false when no layout matches; such matches sort after every match
// with a parseable date rather than failing the recompute.
func dateKey(date string) (time.Time, bool) {
	for _, layout := range orderLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortMatches establishes the one total order the engine folds in:
// chronological by parsed date, unparseable dates last, original
// submission sequence as the tie break. The input slice is not
// modified; callers get a sorted copy so Recompute never reorders the
// caller's data.
func sortMatches(matches []Match) []Match {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := dateKey(sorted[i].Date)
		tj, okj := dateKey(sorted[j].Date)
		if oki != okj {
			// parseable dates come before the "infinitely late" ones
			return oki
		}
		if oki && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	return sorted
}
