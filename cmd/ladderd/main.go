/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/store"
)

const RefEnvVar = "LADDER_STORE_REF"

func main() {
	ctx := context.Background()

	f := flag.NewFlagSet("ladderd", flag.ExitOnError)
	backend := f.String("store", "sheets", "match store backend (sheets or postgres)")
	ref := f.String("ref", os.Getenv(RefEnvVar),
		"spreadsheet URL or postgres connection string")
	listen := f.String("listen", ":8080", "listen address")
	err := f.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *ref == "" {
		fmt.Fprintf(os.Stderr, "ladderd: --ref or %v is required\n", RefEnvVar)
		os.Exit(1)
	}

	s, err := store.Open(ctx, *backend, *ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ladderd: could not open %v store: %v\n",
			*backend, err)
		os.Exit(1)
	}
	defer s.Close()

	srv := &server{
		store:  s,
		engine: elo.NewEngine(elo.DefaultConfig()),
	}

	log.Printf("ladderd: listening on %v", *listen)
	err = http.ListenAndServe(*listen, newRouter(srv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ladderd: %v\n", err)
		os.Exit(1)
	}
}
