/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package elo

import (
	"math"
	"sort"
)

// StandingsRow is one ranked line of the standings table.
type StandingsRow struct {
	Rank   int
	Player string
	Rating float64
	Games  int
	Wins   int
	Losses int
	Ties   int
}

// Standings is the ranked projection of a recompute result. HasTies is
// false when no player has a tie recorded; renderers use it to omit the
// ties column (the underlying records still track ties either way).
type Standings struct {
	Rows    []StandingsRow
	HasTies bool
}

// BuildStandings projects final ratings and records into a ranked
// table: rating descending, player identifier ascending on equal
// ratings, dense rank from 1. Players present in ratings but absent
// from records get zero tallies.
func (e *Engine) BuildStandings(ratings Ratings, records Records) Standings {
	rows := make([]StandingsRow, 0, len(ratings))
	hasTies := false
	for player, rating := range ratings {
		if e.cfg.RoundDisplay {
			rating = math.Round(rating*1000) / 1000
		}
		rec := records[player]
		if rec.Ties > 0 {
			hasTies = true
		}
		rows = append(rows, StandingsRow{
			Player: player,
			Rating: rating,
			Games:  rec.Games,
			Wins:   rec.Wins,
			Losses: rec.Losses,
			Ties:   rec.Ties,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Player < rows[j].Player
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return Standings{Rows: rows, HasTies: hasTies}
}
