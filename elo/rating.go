/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package elo

import "math"

// ExpectedScore returns the probability that a team rated ra scores
// against a team rated rb.
//
// 1/(10^((rb-ra)/400)+1) == 1/(exp(ln(10)*((rb-ra)/400))+1)
//
// ExpectedScore(a,b) + ExpectedScore(b,a) == 1 for all a, b.
func ExpectedScore(ra float64, rb float64) float64 {
	exp := math.Pow(10, (rb-ra)/400.0)
	return 1.0 / (exp + 1.0)
}

// MovFactor scales a rating delta by how lopsided the score was. The
// margin amplifies the adjustment logarithmically while a larger
// existing rating gap dampens it, so a heavy favorite gains less for
// running up the score on a much weaker opponent.
//
// A drawn score returns exactly 0: no rating movement. Forfeits bypass
// this formula entirely; see Engine.Recompute.
func MovFactor(ra float64, rb float64, scoreW int, scoreL int) float64 {
	diff := scoreW - scoreL
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		return 0.0
	}
	denom := math.Abs(ra-rb)/400.0 + 2.2
	return math.Log(float64(diff)+1) * (2.2 / denom)
}
