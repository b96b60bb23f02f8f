/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package store defines the match log contract the rating engine's
// callers depend on, and opens a concrete backend by name. Two
// backends exist: the league's shared Google Sheet and Postgres.
package store

import (
	"context"
	"fmt"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/pgstore"
	"github.com/mikeb26/leagueladder/sheetstore"
)

// Store is a match log plus optional baseline supplier. LoadMatches
// must return matches with Seq assigned in original submission order;
// the engine relies on it for tie-breaking.
type Store interface {
	LoadMatches(ctx context.Context) ([]elo.Match, error)
	AppendMatch(ctx context.Context, m elo.Match) error
	// DeleteLastMatch undoes the most recent submission.
	DeleteLastMatch(ctx context.Context) error
	// LoadBaseline returns the prior rating snapshot, or an empty map
	// when the backend has none recorded (a cold start, not an error).
	LoadBaseline(ctx context.Context) (elo.Ratings, error)
	Close() error
}

// StandingsPublisher is implemented by backends that can write a
// standings table back for the league to see (currently the sheet
// backend only).
type StandingsPublisher interface {
	PublishStandings(ctx context.Context, st elo.Standings) error
}

// Open returns the named backend. dsn is a Postgres connection string
// for "postgres" and a spreadsheet URL or ID for "sheets".
func Open(ctx context.Context, backend, dsn string) (Store, error) {
	switch backend {
	case "postgres":
		return pgstore.Open(ctx, dsn)
	case "sheets":
		return sheetstore.Open(ctx, dsn)
	}

	return nil, fmt.Errorf("unknown store backend %q (want postgres or sheets)", backend)
}
