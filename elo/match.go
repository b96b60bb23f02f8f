/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package elo

import (
	"errors"
	"fmt"
	"strings"
)

// Forfeit indicates which side, if any, forfeited a match. A forfeited
// match is rated with the engine's fixed forfeit MOV instead of the
// margin-of-victory formula.
type Forfeit int

const (
	ForfeitNone Forfeit = iota
	ForfeitByWinners
	ForfeitByLosers
)

func (f Forfeit) String() string {
	switch f {
	case ForfeitNone:
		return ""
	case ForfeitByWinners:
		return "winners"
	case ForfeitByLosers:
		return "losers"
	}
	return "?"
}

// ParseForfeit converts a stored forfeit column value back to a
// Forfeit. The legacy log recorded the forfeiting side as "A"
// (winners) or "B" (losers). Empty and unrecognized values mean no
// forfeit.
func ParseForfeit(s string) Forfeit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "winners", "w", "a":
		return ForfeitByWinners
	case "losers", "l", "b":
		return ForfeitByLosers
	}
	return ForfeitNone
}

// Match is one scored, team-based result as supplied by a match log
// store. The engine treats matches as immutable; it never rewrites a
// Match it is handed.
//
// Seq is the original submission order and is used only to break ties
// between matches sharing a date (or whose dates fail to parse). Stores
// must assign it monotonically when loading.
type Match struct {
	Date    string
	Winners []string
	Losers  []string
	ScoreW  int
	ScoreL  int
	Forfeit Forfeit
	Seq     int
}

var ErrEmptyTeam = errors.New("match has an empty winners or losers list")

// Validate checks the structural constraints the recompute fold relies
// on. Team mean ratings divide by team size, so empty teams must be
// rejected up front rather than surfacing as an arithmetic fault.
func (m *Match) Validate() error {
	if len(m.Winners) == 0 || len(m.Losers) == 0 {
		return fmt.Errorf("match seq:%v date:%q: %w", m.Seq, m.Date, ErrEmptyTeam)
	}
	if m.ScoreW < 0 || m.ScoreL < 0 {
		return fmt.Errorf("match seq:%v date:%q: negative score", m.Seq, m.Date)
	}
	return nil
}
