/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package ladder is the glue around the rating engine: standings
// rendering, CSV export, and match-history import from legacy HTML
// archives. The engine itself lives in the elo package and does no I/O.
package ladder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeb26/leagueladder/elo"
)

// BuildStandingsOutput formats standings into an aligned text table.
// The ties column is omitted entirely when no player has a tie
// recorded.
func BuildStandingsOutput(st elo.Standings) string {
	if len(st.Rows) == 0 {
		return "No rated players yet\n"
	}

	headers := []string{"Rank", "Player", "Rating", "Games", "W", "L"}
	if st.HasTies {
		headers = append(headers, "T")
	}

	rows := make([][]string, 0, len(st.Rows))
	for _, r := range st.Rows {
		row := []string{
			fmt.Sprintf("%v.", r.Rank),
			r.Player,
			formatRating(r.Rating),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
		}
		if st.HasTies {
			row = append(row, strconv.Itoa(r.Ties))
		}
		rows = append(rows, row)
	}

	// Compute column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

// formatRating trims trailing zeros so a 1200 baseline prints as
// "1200" while a computed 1210.397 keeps its precision.
func formatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
