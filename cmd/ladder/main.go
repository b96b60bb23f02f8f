/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
	"github.com/mikeb26/leagueladder/ladder"
	"github.com/mikeb26/leagueladder/snapshot"
	"github.com/mikeb26/leagueladder/store"
)

//go:embed help.txt
var helpText string

// RefEnvVar supplies the default --ref value.
const RefEnvVar = "LADDER_STORE_REF"

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"standings": handleStandings,
	"ratings":   handleRatings,
	"log":       handleLog,
	"undo":      handleUndo,
	"import":    handleImport,
	"publish":   handlePublish,
	"snapshot":  handleSnapshot,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// storeFlags registers the backend selection flags shared by every
// store-touching command.
func storeFlags(fs *flag.FlagSet) (backend *string, ref *string) {
	backend = fs.String("store", "sheets", "match log backend: sheets or postgres")
	ref = fs.String("ref", os.Getenv(RefEnvVar),
		"spreadsheet URL/ID or postgres connection string")
	return backend, ref
}

func openStore(ctx context.Context, backend, ref string) store.Store {
	if ref == "" {
		log.Fatalf("no store ref given; pass --ref or set %v", RefEnvVar)
	}
	st, err := store.Open(ctx, backend, ref)
	if err != nil {
		log.Fatalf("Error opening %v store: %v", backend, err)
	}
	return st
}

// loadHistory fetches the match log and baseline concurrently.
func loadHistory(ctx context.Context, st store.Store) ([]elo.Match, elo.Ratings, error) {
	var matches []elo.Match
	var baseline elo.Ratings

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = st.LoadMatches(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		baseline, err = st.LoadBaseline(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return matches, baseline, nil
}

func handleStandings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	backend, ref := storeFlags(fs)
	asCSV := fs.Bool("csv", false, "emit CSV instead of an aligned table")
	snapName := fs.String("snapshot", "", "use this saved snapshot as the baseline")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	st := openStore(ctx, *backend, *ref)
	defer st.Close()

	matches, baseline, err := loadHistory(ctx, st)
	if err != nil {
		log.Fatalf("Error loading match history: %v", err)
	}
	if *snapName != "" {
		snaps, err := snapshot.NewStore(ctx)
		if err != nil {
			log.Fatalf("Error opening snapshot store: %v", err)
		}
		baseline, err = snaps.Load(*snapName)
		if err != nil {
			log.Fatalf("Error loading snapshot %v: %v", *snapName, err)
		}
	}

	eng := elo.NewEngine(elo.DefaultConfig())
	ratings, records, err := eng.Recompute(matches, baseline)
	if err != nil {
		log.Fatalf("Error recomputing ratings: %v", err)
	}
	standings := eng.BuildStandings(ratings, records)

	if *asCSV {
		if err := ladder.WriteStandingsCSV(os.Stdout, standings); err != nil {
			log.Fatalf("Error writing CSV: %v", err)
		}
		return
	}
	fmt.Print(ladder.BuildStandingsOutput(standings))
}

func handleRatings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("ratings", flag.ExitOnError)
	backend, ref := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	st := openStore(ctx, *backend, *ref)
	defer st.Close()

	matches, baseline, err := loadHistory(ctx, st)
	if err != nil {
		log.Fatalf("Error loading match history: %v", err)
	}

	cfg := elo.DefaultConfig()
	cfg.RoundDisplay = false
	ratings, _, err := elo.NewEngine(cfg).Recompute(matches, baseline)
	if err != nil {
		log.Fatalf("Error recomputing ratings: %v", err)
	}

	players := make([]string, 0, len(ratings))
	for p := range ratings {
		players = append(players, p)
	}
	sort.Strings(players)
	for _, p := range players {
		fmt.Printf("%v: %v\n", p, ratings[p])
	}
}

func handleLog(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	backend, ref := storeFlags(fs)
	date := fs.String("date", "", "match date (any common format)")
	winners := fs.String("winners", "", "semicolon-separated winning roster")
	losers := fs.String("losers", "", "semicolon-separated losing roster")
	scoreW := fs.Int("scorew", 0, "winning score")
	scoreL := fs.Int("scorel", 0, "losing score")
	forfeit := fs.String("forfeit", "", "forfeiting side: winners or losers")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m := elo.Match{
		Date:    internal.NormalizeMatchDate(*date),
		Winners: internal.SplitPlayerList(*winners),
		Losers:  internal.SplitPlayerList(*losers),
		ScoreW:  *scoreW,
		ScoreL:  *scoreL,
		Forfeit: elo.ParseForfeit(*forfeit),
	}
	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid match: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}
	if m.ScoreW < m.ScoreL {
		// accepted by the engine, but almost always a typo at entry time
		fmt.Fprintf(os.Stderr,
			"warning: winning score %v is below losing score %v\n",
			m.ScoreW, m.ScoreL)
	}

	st := openStore(ctx, *backend, *ref)
	defer st.Close()

	if err := st.AppendMatch(ctx, m); err != nil {
		log.Fatalf("Error logging match: %v", err)
	}
	fmt.Printf("Logged %v: %v def. %v %v-%v\n", m.Date,
		internal.JoinPlayerList(m.Winners), internal.JoinPlayerList(m.Losers),
		m.ScoreW, m.ScoreL)
}

func handleUndo(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("undo", flag.ExitOnError)
	backend, ref := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	st := openStore(ctx, *backend, *ref)
	defer st.Close()

	if err := st.DeleteLastMatch(ctx); err != nil {
		log.Fatalf("Error undoing last match: %v", err)
	}
	fmt.Println("Removed the most recently logged match")
}

func handleImport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	backend, ref := storeFlags(fs)
	url := fs.String("url", "", "URL of the legacy HTML results archive")
	dryRun := fs.Bool("dryrun", false, "print the parsed matches as CSV instead of appending")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *url == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --url.")
		fs.Usage()
		os.Exit(1)
	}

	matches, err := ladder.ImportMatches(ctx, *url)
	if err != nil {
		log.Fatalf("Error importing from %v: %v", *url, err)
	}

	if *dryRun {
		if err := ladder.WriteMatchesCSV(os.Stdout, matches); err != nil {
			log.Fatalf("Error writing CSV: %v", err)
		}
		return
	}

	st := openStore(ctx, *backend, *ref)
	defer st.Close()

	for _, m := range matches {
		if err := st.AppendMatch(ctx, m); err != nil {
			log.Fatalf("Error appending imported match seq:%v: %v", m.Seq, err)
		}
	}
	fmt.Printf("Imported %v matches\n", len(matches))
}

func handlePublish(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)
	backend, ref := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	st := openStore(ctx, *backend, *ref)
	defer st.Close()

	pub, ok := st.(store.StandingsPublisher)
	if !ok {
		log.Fatalf("the %v backend cannot publish standings", *backend)
	}

	matches, baseline, err := loadHistory(ctx, st)
	if err != nil {
		log.Fatalf("Error loading match history: %v", err)
	}

	eng := elo.NewEngine(elo.DefaultConfig())
	ratings, records, err := eng.Recompute(matches, baseline)
	if err != nil {
		log.Fatalf("Error recomputing ratings: %v", err)
	}
	if err := pub.PublishStandings(ctx, eng.BuildStandings(ratings, records)); err != nil {
		log.Fatalf("Error publishing standings: %v", err)
	}
	fmt.Println("Standings published")
}

func handleSnapshot(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	backend, ref := storeFlags(fs)
	name := fs.String("name", "", "snapshot name, e.g. 2026-season1")
	del := fs.Bool("delete", false, "delete the named snapshot instead of saving")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --name.")
		fs.Usage()
		os.Exit(1)
	}

	if *del {
		snaps, err := snapshot.NewStore(ctx)
		if err != nil {
			log.Fatalf("Error opening snapshot store: %v", err)
		}
		if err := snaps.Delete(*name); err != nil {
			log.Fatalf("Error deleting snapshot %v: %v", *name, err)
		}
		fmt.Printf("Deleted snapshot %v\n", *name)
		return
	}

	st := openStore(ctx, *backend, *ref)
	defer st.Close()

	matches, baseline, err := loadHistory(ctx, st)
	if err != nil {
		log.Fatalf("Error loading match history: %v", err)
	}

	cfg := elo.DefaultConfig()
	cfg.RoundDisplay = false
	ratings, _, err := elo.NewEngine(cfg).Recompute(matches, baseline)
	if err != nil {
		log.Fatalf("Error recomputing ratings: %v", err)
	}

	snaps, err := snapshot.NewStore(ctx)
	if err != nil {
		log.Fatalf("Error opening snapshot store: %v", err)
	}
	if err := snaps.Save(*name, ratings); err != nil {
		log.Fatalf("Error saving snapshot %v: %v", *name, err)
	}
	fmt.Printf("Saved snapshot %v (%v players)\n", *name, len(ratings))
}
