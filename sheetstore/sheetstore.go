/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package sheetstore persists the match log in the league's shared
// Google Sheet. The spreadsheet carries three worksheets: "matches"
// (the log, one row per submission), "baseline" (optional prior
// ratings), and "standings" (published output, owned entirely by this
// package; every publish rewrites it).
package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
)

// CredsEnvVar holds the service account credentials JSON.
const CredsEnvVar = "LADDER_SHEETS_CREDENTIALS_JSON"

type Store struct {
	service       *sheets.Service
	spreadsheetID string
}

// Open creates a sheet-backed store using service account credentials
// from the environment. sheetRef may be a full spreadsheet URL or a
// bare spreadsheet ID.
func Open(ctx context.Context, sheetRef string) (*Store, error) {
	credsJSON := os.Getenv(CredsEnvVar)
	if credsJSON == "" {
		return nil, fmt.Errorf("missing %v in environment", CredsEnvVar)
	}

	config, err := google.JWTConfigFromJSON([]byte(credsJSON),
		sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	client := config.Client(ctx)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	spreadsheetID, err := extractSpreadsheetID(sheetRef)
	if err != nil {
		return nil, err
	}

	return &Store{
		service:       srv,
		spreadsheetID: spreadsheetID,
	}, nil
}

var spreadsheetIDRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// extractSpreadsheetID pulls the spreadsheet ID out of a Google Sheets
// URL; bare IDs pass through unchanged.
func extractSpreadsheetID(ref string) (string, error) {
	if matches := spreadsheetIDRe.FindStringSubmatch(ref); len(matches) >= 2 {
		return matches[1], nil
	}
	if regexp.MustCompile(`^[a-zA-Z0-9-_]+$`).MatchString(ref) {
		return ref, nil
	}
	return "", fmt.Errorf("could not extract spreadsheet ID from %q", ref)
}

// LoadMatches reads the full match log. Seq reflects row order within
// the sheet, which is append-only and therefore submission order.
func (s *Store) LoadMatches(ctx context.Context) ([]elo.Match, error) {
	readRange := internal.MatchSheetName + "!A2:F"
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, readRange).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading match rows: %w", err)
	}

	var matches []elo.Match
	for _, row := range resp.Values {
		m, ok := matchFromRow(row, len(matches))
		if !ok {
			// blank or partially filled row; skip rather than abort
			continue
		}
		matches = append(matches, m)
	}

	return matches, nil
}

func (s *Store) AppendMatch(ctx context.Context, m elo.Match) error {
	if err := m.Validate(); err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{rowFromMatch(m)}}
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, internal.MatchSheetName+"!A:F", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending match row: %w", err)
	}
	return nil
}

// DeleteLastMatch removes the last non-empty row of the match sheet,
// undoing the most recent submission. The header row is never removed.
func (s *Store) DeleteLastMatch(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, internal.MatchSheetName+"!A:F").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading match rows: %w", err)
	}

	last := 0
	for i, row := range resp.Values {
		for _, cell := range row {
			if str, ok := cell.(string); ok && str != "" {
				last = i + 1
				break
			}
		}
	}
	if last <= 1 {
		return fmt.Errorf("match log is already empty")
	}

	sheetID, err := s.worksheetID(ctx, internal.MatchSheetName)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(last - 1),
					EndIndex:   int64(last),
				},
			},
		}},
	}
	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, req).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting match row %v: %w", last, err)
	}
	return nil
}

// LoadBaseline reads the optional baseline worksheet. A missing sheet
// or empty range is a cold start, not an error; any other read failure
// is returned so callers never recompute against a falsely empty
// baseline.
func (s *Store) LoadBaseline(ctx context.Context) (elo.Ratings, error) {
	readRange := internal.BaselineSheetName + "!A2:B"
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, readRange).
		Context(ctx).Do()
	if err != nil {
		if missingSheetErr(err) {
			// leagues without a baseline sheet simply start everyone fresh
			return elo.Ratings{}, nil
		}
		return nil, fmt.Errorf("reading baseline rows: %w", err)
	}

	baseline := make(elo.Ratings)
	for _, row := range resp.Values {
		player, rating, ok := baselineFromRow(row)
		if !ok {
			continue
		}
		baseline[player] = rating
	}
	return baseline, nil
}

// PublishStandings clears the standings worksheet and rewrites it from
// st, matching the column layout of the text table.
func (s *Store) PublishStandings(ctx context.Context, st elo.Standings) error {
	if _, err := s.service.Spreadsheets.Values.
		Clear(s.spreadsheetID, internal.StandingsSheetName+"!A:G",
			&sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clearing standings sheet: %w", err)
	}

	vr := &sheets.ValueRange{Values: standingsRows(st)}
	_, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, internal.StandingsSheetName+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing standings sheet: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// missingSheetErr reports whether err is the Sheets API's response to
// reading a worksheet that does not exist: HTTP 400 with an unparseable
// range, or HTTP 404. Auth, quota, and server failures are not missing
// sheets and must surface to the caller.
func missingSheetErr(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Code {
	case http.StatusNotFound:
		return true
	case http.StatusBadRequest:
		return strings.Contains(gerr.Message, "Unable to parse range")
	}
	return false
}

// worksheetID resolves a worksheet title to its numeric sheet ID.
func (s *Store) worksheetID(ctx context.Context, title string) (int64, error) {
	meta, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("reading spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("spreadsheet has no %q worksheet", title)
}
