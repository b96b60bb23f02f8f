/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"reflect"
	"testing"
)

func TestNormalizeMatchDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "2024-01-05", "2024-01-05"},
		{"datetime collapses to date", "2024-01-05T19:30:00Z", "2024-01-05"},
		{"us style", "1/5/2024", "2024-01-05"},
		{"named month", "Jan 5 2024", "2024-01-05"},
		{"surrounding whitespace", "  2024-01-05  ", "2024-01-05"},
		{"unparseable passes through", "week three", "week three"},
		{"empty passes through", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizeMatchDate(c.in); got != c.want {
				t.Errorf("NormalizeMatchDate(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizePlayerName(t *testing.T) {
	if got := NormalizePlayerName("  Alice   B.  Jones "); got != "Alice B. Jones" {
		t.Errorf("NormalizePlayerName = %q", got)
	}
}

func TestSplitJoinPlayerList(t *testing.T) {
	players := SplitPlayerList(" Alice ;; Bob;Carol  D ")
	want := []string{"Alice", "Bob", "Carol D"}
	if !reflect.DeepEqual(players, want) {
		t.Fatalf("SplitPlayerList = %v; want %v", players, want)
	}
	if got := JoinPlayerList(players); got != "Alice; Bob; Carol D" {
		t.Errorf("JoinPlayerList = %q", got)
	}
}
