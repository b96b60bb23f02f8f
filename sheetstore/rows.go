/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sheetstore

import (
	"strconv"
	"strings"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
)

// Match sheet columns: Date | Winners | Losers | ScoreW | ScoreL | Forfeit

// matchFromRow converts one sheet row into a Match. Rows missing a
// roster or with non-numeric scores are rejected (ok=false) so one bad
// hand-edited row doesn't take the whole log down.
func matchFromRow(row []interface{}, seq int) (elo.Match, bool) {
	if len(row) < 5 {
		return elo.Match{}, false
	}

	winners := internal.SplitPlayerList(cellString(row, 1))
	losers := internal.SplitPlayerList(cellString(row, 2))
	if len(winners) == 0 || len(losers) == 0 {
		return elo.Match{}, false
	}

	scoreW, errW := strconv.Atoi(strings.TrimSpace(cellString(row, 3)))
	scoreL, errL := strconv.Atoi(strings.TrimSpace(cellString(row, 4)))
	if errW != nil || errL != nil || scoreW < 0 || scoreL < 0 {
		return elo.Match{}, false
	}

	return elo.Match{
		Date:    internal.NormalizeMatchDate(cellString(row, 0)),
		Winners: winners,
		Losers:  losers,
		ScoreW:  scoreW,
		ScoreL:  scoreL,
		Forfeit: elo.ParseForfeit(cellString(row, 5)),
		Seq:     seq,
	}, true
}

func rowFromMatch(m elo.Match) []interface{} {
	return []interface{}{
		m.Date,
		internal.JoinPlayerList(m.Winners),
		internal.JoinPlayerList(m.Losers),
		strconv.Itoa(m.ScoreW),
		strconv.Itoa(m.ScoreL),
		m.Forfeit.String(),
	}
}

// baselineFromRow parses a Player | Rating row.
func baselineFromRow(row []interface{}) (string, float64, bool) {
	player := internal.NormalizePlayerName(cellString(row, 0))
	if player == "" {
		return "", 0, false
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(cellString(row, 1)), 64)
	if err != nil {
		return "", 0, false
	}
	return player, rating, true
}

// standingsRows renders a standings table as sheet values, header
// included.
func standingsRows(st elo.Standings) [][]interface{} {
	header := []interface{}{"Rank", "Player", "Rating", "Games", "W", "L"}
	if st.HasTies {
		header = append(header, "T")
	}

	rows := make([][]interface{}, 0, len(st.Rows)+1)
	rows = append(rows, header)
	for _, r := range st.Rows {
		row := []interface{}{r.Rank, r.Player, r.Rating, r.Games, r.Wins, r.Losses}
		if st.HasTies {
			row = append(row, r.Ties)
		}
		rows = append(rows, row)
	}
	return rows
}

// cellString returns the string value of column i, tolerating short
// rows and non-string cells.
func cellString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return ""
}
