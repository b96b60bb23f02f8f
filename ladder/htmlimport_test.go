/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/leagueladder/elo"
)

const archivePage = `
<html><body>
<h1>2023 Fall League Results</h1>
<table id="matches">
<thead>
<tr><th>Date</th><th>Winners</th><th>Losers</th><th>W</th><th>L</th><th>Forfeit</th></tr>
</thead>
<tbody>
<tr><td>2023-09-04</td><td>Alice; Bob</td><td>Carol; Dave</td><td>11</td><td>7</td><td></td></tr>
<tr><td>Sep 11 2023</td><td>Carol</td><td>Alice</td><td>7</td><td>0</td><td>B</td></tr>
<tr><td>2023-09-18</td><td></td><td>Dave</td><td>5</td><td>3</td><td></td></tr>
<tr><td>2023-09-25</td><td>Dave</td><td>Bob</td><td>n/a</td><td>3</td><td></td></tr>
<tr><td>2023-10-02</td><td>Bob</td><td>Carol</td><td>9</td><td>9</td><td></td></tr>
</tbody>
</table>
</body></html>`

func TestParseMatchTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(archivePage))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	matches, err := ParseMatchTable(doc)
	if err != nil {
		t.Fatalf("ParseMatchTable failed: %v", err)
	}

	// rows 3 and 4 are malformed (empty roster, non-numeric score) and
	// must be skipped, not fatal
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d: %+v", len(matches), matches)
	}

	m := matches[0]
	if m.Date != "2023-09-04" {
		t.Errorf("match 0 date = %q", m.Date)
	}
	if !reflect.DeepEqual(m.Winners, []string{"Alice", "Bob"}) {
		t.Errorf("match 0 winners = %v", m.Winners)
	}
	if !reflect.DeepEqual(m.Losers, []string{"Carol", "Dave"}) {
		t.Errorf("match 0 losers = %v", m.Losers)
	}
	if m.ScoreW != 11 || m.ScoreL != 7 || m.Forfeit != elo.ForfeitNone {
		t.Errorf("match 0 = %+v", m)
	}

	m = matches[1]
	if m.Date != "2023-09-11" {
		t.Errorf("match 1 date not normalized: %q", m.Date)
	}
	if m.Forfeit != elo.ForfeitByLosers {
		t.Errorf("match 1 forfeit = %v; want ForfeitByLosers", m.Forfeit)
	}

	for i, m := range matches {
		if m.Seq != i {
			t.Errorf("match %d seq = %d; want table order", i, m.Seq)
		}
	}
}

func TestParseMatchTable_NoTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>gone</p></body></html>"))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	if _, err := ParseMatchTable(doc); err == nil {
		t.Fatal("expected error for page without a match table")
	}
}
