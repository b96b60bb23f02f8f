/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mikeb26/leagueladder/ladder"
)

// this program exists just to seed the http cache for league archive pages

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %v <archive url> [<archive url> ...]\n",
			os.Args[0])
		os.Exit(1)
	}

	for _, url := range os.Args[1:] {
		matches, err := ladder.ImportMatches(ctx, url)
		time.Sleep(2 * time.Second) // avoid pegging the league site
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded %v (%v matches)\n", url, len(matches))
	}
}
