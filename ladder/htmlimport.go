/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
)

// ImportMatches fetches a legacy league archive page and extracts its
// match table. Archives are static exports, so responses are cached
// aggressively.
func ImportMatches(ctx context.Context, url string) ([]elo.Match, error) {
	doc, err := fetchDoc(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch match archive: %w", err)
	}
	return ParseMatchTable(doc)
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func fetchDoc(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	client := internal.NewCachedHttpClient(ctx, 30*24*time.Hour)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// ParseMatchTable extracts matches from the archive's results table.
// Expected layout, one match per row:
//
//	<table id="matches">
//	  <tr><td>Date</td><td>Winners</td><td>Losers</td>
//	      <td>ScoreW</td><td>ScoreL</td><td>Forfeit</td></tr>
//
// The forfeit cell is optional. Rosters are semicolon separated. Rows
// missing a roster are skipped rather than failing the whole import;
// dates are normalized to YYYY-MM-DD where the lenient parser can, and
// Seq reflects table order.
func ParseMatchTable(doc *goquery.Document) ([]elo.Match, error) {
	var matches []elo.Match

	doc.Find("table#matches tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 5 {
			return
		}

		winners := internal.SplitPlayerList(cells.Eq(1).Text())
		losers := internal.SplitPlayerList(cells.Eq(2).Text())
		if len(winners) == 0 || len(losers) == 0 {
			return
		}

		scoreW, errW := strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text()))
		scoreL, errL := strconv.Atoi(strings.TrimSpace(cells.Eq(4).Text()))
		if errW != nil || errL != nil {
			return
		}

		forfeit := elo.ForfeitNone
		if cells.Length() > 5 {
			forfeit = elo.ParseForfeit(cells.Eq(5).Text())
		}

		matches = append(matches, elo.Match{
			Date:    internal.NormalizeMatchDate(cells.Eq(0).Text()),
			Winners: winners,
			Losers:  losers,
			ScoreW:  scoreW,
			ScoreL:  scoreL,
			Forfeit: forfeit,
			Seq:     len(matches),
		})
	})

	if len(matches) == 0 {
		return nil, fmt.Errorf("no matches found in archive table")
	}

	return matches, nil
}
