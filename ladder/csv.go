/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
)

// WriteStandingsCSV exports standings in the same column layout as the
// text table, ties column included only when present.
func WriteStandingsCSV(w io.Writer, st elo.Standings) error {
	cw := csv.NewWriter(w)

	header := []string{"Rank", "Player", "Rating", "Games", "W", "L"}
	if st.HasTies {
		header = append(header, "T")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing standings header: %w", err)
	}

	for _, r := range st.Rows {
		row := []string{
			strconv.Itoa(r.Rank),
			r.Player,
			formatRating(r.Rating),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
		}
		if st.HasTies {
			row = append(row, strconv.Itoa(r.Ties))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing standings row for %v: %w", r.Player, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMatchesCSV exports a match log, e.g. for backup before a
// destructive sheet operation.
func WriteMatchesCSV(w io.Writer, matches []elo.Match) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Winners", "Losers", "ScoreW", "ScoreL", "Forfeit"}); err != nil {
		return fmt.Errorf("writing match header: %w", err)
	}
	for _, m := range matches {
		row := []string{
			m.Date,
			internal.JoinPlayerList(m.Winners),
			internal.JoinPlayerList(m.Losers),
			strconv.Itoa(m.ScoreW),
			strconv.Itoa(m.ScoreL),
			m.Forfeit.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing match seq:%v: %w", m.Seq, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
