/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeMatchDate converts a user- or sheet-supplied date into the
// canonical YYYY-MM-DD form the match log stores. Inputs the lenient
// parser can't make sense of are returned unchanged; the rating
// engine's ordering sorts those to the end rather than rejecting them.
func NormalizeMatchDate(s string) string {
	s = strings.TrimSpace(s)
	t, err := ParseDateOrZero(s)
	if err != nil || t.IsZero() {
		return s
	}
	return t.Format("2006-01-02")
}

// NormalizePlayerName trims and collapses interior whitespace. Player
// identifiers are matched exactly across the match log, so stray
// spacing would silently split one player into two.
func NormalizePlayerName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitPlayerList parses a semicolon-separated roster cell ("Alice;
// Bob; Carol") into normalized player identifiers, dropping empties.
func SplitPlayerList(s string) []string {
	var players []string
	for _, part := range strings.Split(s, ";") {
		if name := NormalizePlayerName(part); name != "" {
			players = append(players, name)
		}
	}
	return players
}

// JoinPlayerList is the inverse of SplitPlayerList.
func JoinPlayerList(players []string) string {
	return strings.Join(players, "; ")
}
