/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "leagueladder/0.3.0 (+https://github.com/mikeb26/leagueladder)"
	WebCacheBucket = "bopmatic-leagueladder-prod-webcache"
	SnapshotBucket = "bopmatic-leagueladder-prod-snapshots"

	// Default worksheet names within the ladder spreadsheet
	MatchSheetName     = "matches"
	StandingsSheetName = "standings"
	BaselineSheetName  = "baseline"
)
