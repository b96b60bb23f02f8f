/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package elo implements the ladder's rating recomputation engine: a
// deterministic fold over an ordered match history producing final
// ratings and win/loss/tie records, plus the projection of that result
// into ranked standings.
//
// The engine performs no I/O. Match histories and baseline ratings are
// supplied by a store (see the store package); consumers are handed
// plain maps and tables to persist or render as they see fit. One
// Recompute call owns its state exclusively, so independent calls may
// run concurrently without coordination.
package elo

import "fmt"

// Config holds the rating constants for an Engine. It is immutable for
// the lifetime of the engine instance.
type Config struct {
	// StartingRating seeds any player first encountered during a
	// recompute who is absent from the baseline.
	StartingRating float64

	// KFactor scales every per-match rating delta.
	KFactor float64

	// ForfeitMOV is the fixed margin-of-victory value applied to
	// forfeited matches regardless of the recorded score.
	ForfeitMOV float64

	// RoundDisplay controls whether BuildStandings rounds ratings to
	// display precision. Recompute itself never rounds.
	RoundDisplay bool
}

// DefaultConfig returns the ladder's standard constants.
func DefaultConfig() Config {
	return Config{
		StartingRating: 1200.0,
		KFactor:        30.0,
		ForfeitMOV:     0.75,
		RoundDisplay:   true,
	}
}

// Ratings maps player identifier to rating.
type Ratings map[string]float64

// Record tallies one player's results across a recompute.
type Record struct {
	Games  int
	Wins   int
	Losses int
	Ties   int
}

// Records maps player identifier to result tallies.
type Records map[string]Record

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Recompute replays the supplied match history from scratch and returns
// the resulting ratings and records.
//
// The baseline, when non-nil, seeds the initial ratings; it is copied,
// never mutated. Matches are folded in the order defined by sortMatches
// regardless of input order, so permuting the input never changes the
// result. Every player appearing on either side of any match is present
// in both returned maps.
//
// A match whose "winning" score is below its losing score is accepted
// and folds with an actual outcome of 0: the nominal winners lose
// rating and are credited a loss. Upstream data entry should prevent
// this, but the engine does not reject it.
func (e *Engine) Recompute(matches []Match, baseline Ratings) (Ratings, Records, error) {
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid match history: %w", err)
		}
	}

	ratings := make(Ratings, len(baseline))
	for name, r := range baseline {
		ratings[name] = r
	}
	records := make(Records)

	ensure := func(name string) {
		if _, ok := ratings[name]; !ok {
			ratings[name] = e.cfg.StartingRating
		}
		if _, ok := records[name]; !ok {
			records[name] = Record{}
		}
	}

	for _, m := range sortMatches(matches) {
		for _, name := range m.Winners {
			ensure(name)
		}
		for _, name := range m.Losers {
			ensure(name)
		}

		ra := teamMean(ratings, m.Winners)
		rb := teamMean(ratings, m.Losers)

		pWin := ExpectedScore(ra, rb)

		var mov float64
		if m.Forfeit != ForfeitNone {
			mov = e.cfg.ForfeitMOV
		} else {
			mov = MovFactor(ra, rb, m.ScoreW, m.ScoreL)
		}

		var s float64
		switch {
		case m.ScoreW > m.ScoreL:
			s = 1.0
		case m.ScoreW < m.ScoreL:
			s = 0.0
		default:
			s = 0.5
		}

		delta := e.cfg.KFactor * mov * (s - pWin)

		// The full delta is applied to every participant rather than
		// being split across teammates, so per-match movement is not
		// zero-sum when team sizes differ. This matches the ladder's
		// established behavior; do not "fix" it here without a rules
		// change.
		for _, name := range m.Winners {
			ratings[name] += delta
		}
		for _, name := range m.Losers {
			ratings[name] -= delta
		}

		for _, name := range m.Winners {
			rec := records[name]
			rec.Games++
			tallyOutcome(&rec, s, true)
			records[name] = rec
		}
		for _, name := range m.Losers {
			rec := records[name]
			rec.Games++
			tallyOutcome(&rec, s, false)
			records[name] = rec
		}
	}

	return ratings, records, nil
}

func teamMean(ratings Ratings, team []string) float64 {
	sum := 0.0
	for _, name := range team {
		sum += ratings[name]
	}
	return sum / float64(len(team))
}

// tallyOutcome credits wins/losses/ties for one participant given the
// match outcome s from the winners' perspective. An s of 0 means the
// nominal winners actually carried the lower score, so the credit is
// reversed.
func tallyOutcome(rec *Record, s float64, onWinningSide bool) {
	switch s {
	case 1.0:
		if onWinningSide {
			rec.Wins++
		} else {
			rec.Losses++
		}
	case 0.0:
		if onWinningSide {
			rec.Losses++
		} else {
			rec.Wins++
		}
	default:
		rec.Ties++
	}
}
