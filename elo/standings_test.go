/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package elo

import (
	"testing"
)

func TestBuildStandings_OrderAndRank(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	ratings := Ratings{
		"Bob":   1189.6,
		"Alice": 1210.4,
		"Carol": 1200.0,
	}
	records := Records{
		"Alice": {Games: 1, Wins: 1},
		"Bob":   {Games: 1, Losses: 1},
		// Carol intentionally absent; her tallies default to zero
	}

	st := eng.BuildStandings(ratings, records)
	if len(st.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(st.Rows))
	}
	if st.HasTies {
		t.Error("expected HasTies false with no ties recorded")
	}

	wantOrder := []string{"Alice", "Carol", "Bob"}
	for i, want := range wantOrder {
		row := st.Rows[i]
		if row.Player != want {
			t.Errorf("row %d: player = %v; want %v", i, row.Player, want)
		}
		if row.Rank != i+1 {
			t.Errorf("row %d: rank = %v; want %v", i, row.Rank, i+1)
		}
	}
	carol := st.Rows[1]
	if carol.Games != 0 || carol.Wins != 0 || carol.Losses != 0 || carol.Ties != 0 {
		t.Errorf("Carol tallies should default to zero, got %+v", carol)
	}
}

func TestBuildStandings_EqualRatingBrokenByName(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	ratings := Ratings{"Zed": 1200.0, "Amy": 1200.0, "Mia": 1200.0}

	st := eng.BuildStandings(ratings, Records{})
	wantOrder := []string{"Amy", "Mia", "Zed"}
	for i, want := range wantOrder {
		if st.Rows[i].Player != want {
			t.Errorf("row %d: player = %v; want %v", i, st.Rows[i].Player, want)
		}
	}
}

func TestBuildStandings_TiesFlag(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	ratings := Ratings{"Alice": 1200.0, "Bob": 1200.0}
	records := Records{
		"Alice": {Games: 1, Ties: 1},
		"Bob":   {Games: 1, Ties: 1},
	}

	st := eng.BuildStandings(ratings, records)
	if !st.HasTies {
		t.Error("expected HasTies true when ties were recorded")
	}
}

func TestBuildStandings_RoundsForDisplay(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	ratings := Ratings{"Alice": 1210.39720770839918}

	st := eng.BuildStandings(ratings, Records{})
	if got := st.Rows[0].Rating; got != 1210.397 {
		t.Errorf("rating = %v; want rounded 1210.397", got)
	}

	cfg := DefaultConfig()
	cfg.RoundDisplay = false
	raw := NewEngine(cfg).BuildStandings(ratings, Records{})
	if got := raw.Rows[0].Rating; got != 1210.39720770839918 {
		t.Errorf("rating = %v; want unrounded value", got)
	}
}
