/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package pgstore persists the match log and baseline ratings in
// Postgres.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/mikeb26/leagueladder/elo"
)

type Store struct {
	db *sql.DB
}

// Open connects with the given connection string and ensures the
// schema exists.
func Open(ctx context.Context, connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the necessary tables if they do not exist.
func (s *Store) migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id         SERIAL PRIMARY KEY,
			match_date TEXT   NOT NULL,
			winners    TEXT[] NOT NULL,
			losers     TEXT[] NOT NULL,
			score_w    INT    NOT NULL,
			score_l    INT    NOT NULL,
			forfeit    TEXT   NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS baseline (
			player TEXT             PRIMARY KEY,
			rating DOUBLE PRECISION NOT NULL
		)`,
	}
	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

// LoadMatches returns the full match log in submission order. Seq is
// the position within that order, not the row id, so deletions don't
// leave gaps in the tie-break key.
func (s *Store) LoadMatches(ctx context.Context) ([]elo.Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT match_date, winners, losers, score_w, score_l, forfeit
		 FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	var matches []elo.Match
	for rows.Next() {
		var m elo.Match
		var winners, losers pq.StringArray
		var forfeit string
		if err := rows.Scan(&m.Date, &winners, &losers, &m.ScoreW, &m.ScoreL,
			&forfeit); err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}
		m.Winners = []string(winners)
		m.Losers = []string(losers)
		m.Forfeit = elo.ParseForfeit(forfeit)
		m.Seq = len(matches)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating match rows: %w", err)
	}

	return matches, nil
}

func (s *Store) AppendMatch(ctx context.Context, m elo.Match) error {
	if err := m.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches (match_date, winners, losers, score_w, score_l, forfeit)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.Date, pq.Array(m.Winners), pq.Array(m.Losers), m.ScoreW, m.ScoreL,
		m.Forfeit.String())
	if err != nil {
		return fmt.Errorf("inserting match: %w", err)
	}
	return nil
}

func (s *Store) DeleteLastMatch(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM matches WHERE id = (SELECT MAX(id) FROM matches)`)
	if err != nil {
		return fmt.Errorf("deleting last match: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("match log is already empty")
	}
	return nil
}

func (s *Store) LoadBaseline(ctx context.Context) (elo.Ratings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player, rating FROM baseline`)
	if err != nil {
		return nil, fmt.Errorf("querying baseline: %w", err)
	}
	defer rows.Close()

	baseline := make(elo.Ratings)
	for rows.Next() {
		var player string
		var rating float64
		if err := rows.Scan(&player, &rating); err != nil {
			return nil, fmt.Errorf("scanning baseline row: %w", err)
		}
		baseline[player] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating baseline rows: %w", err)
	}

	return baseline, nil
}

// SaveBaseline replaces the stored baseline with ratings, typically a
// season-end snapshot.
func (s *Store) SaveBaseline(ctx context.Context, ratings elo.Ratings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning baseline tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM baseline`); err != nil {
		return fmt.Errorf("clearing baseline: %w", err)
	}
	for player, rating := range ratings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO baseline (player, rating) VALUES ($1, $2)`,
			player, rating); err != nil {
			return fmt.Errorf("inserting baseline for %v: %w", player, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
