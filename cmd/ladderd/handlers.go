/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
	"github.com/mikeb26/leagueladder/ladder"
	"github.com/mikeb26/leagueladder/store"
)

type server struct {
	store  store.Store
	engine *elo.Engine
}

func newRouter(srv *server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/standings", srv.standingsHandler).Methods("GET")
	r.HandleFunc("/ratings", srv.ratingsHandler).Methods("GET")
	r.HandleFunc("/matches", srv.logMatchHandler).Methods("POST")
	r.HandleFunc("/matches/last", srv.undoHandler).Methods("DELETE")
	return r
}

// matchRequest is the POST /matches body.
type matchRequest struct {
	Date    string   `json:"date"`
	Winners []string `json:"winners"`
	Losers  []string `json:"losers"`
	ScoreW  int      `json:"scoreW"`
	ScoreL  int      `json:"scoreL"`
	Forfeit string   `json:"forfeit,omitempty"`
}

func (srv *server) recompute(r *http.Request) (elo.Ratings, elo.Records, error) {
	ctx := r.Context()
	matches, err := srv.store.LoadMatches(ctx)
	if err != nil {
		return nil, nil, err
	}
	baseline, err := srv.store.LoadBaseline(ctx)
	if err != nil {
		return nil, nil, err
	}
	return srv.engine.Recompute(matches, baseline)
}

func (srv *server) standingsHandler(w http.ResponseWriter, r *http.Request) {
	ratings, records, err := srv.recompute(r)
	if err != nil {
		log.Printf("ladderd.standings: recompute failed: %v", err)
		http.Error(w, "failed to recompute standings", http.StatusBadGateway)
		return
	}
	standings := srv.engine.BuildStandings(ratings, records)

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err := ladder.WriteStandingsCSV(w, standings); err != nil {
			log.Printf("ladderd.standings: csv write failed: %v", err)
		}
		return
	}

	writeJSON(w, standings)
}

func (srv *server) ratingsHandler(w http.ResponseWriter, r *http.Request) {
	ratings, _, err := srv.recompute(r)
	if err != nil {
		log.Printf("ladderd.ratings: recompute failed: %v", err)
		http.Error(w, "failed to recompute ratings", http.StatusBadGateway)
		return
	}
	writeJSON(w, ratings)
}

func (srv *server) logMatchHandler(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed match body", http.StatusBadRequest)
		return
	}

	m := elo.Match{
		Date:    internal.NormalizeMatchDate(req.Date),
		Winners: normalizeRoster(req.Winners),
		Losers:  normalizeRoster(req.Losers),
		ScoreW:  req.ScoreW,
		ScoreL:  req.ScoreL,
		Forfeit: elo.ParseForfeit(req.Forfeit),
	}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := srv.store.AppendMatch(r.Context(), m); err != nil {
		log.Printf("ladderd.log: append failed: %v", err)
		http.Error(w, "failed to log match", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (srv *server) undoHandler(w http.ResponseWriter, r *http.Request) {
	if err := srv.store.DeleteLastMatch(r.Context()); err != nil {
		log.Printf("ladderd.undo: delete failed: %v", err)
		http.Error(w, "failed to undo last match", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func normalizeRoster(players []string) []string {
	var roster []string
	for _, p := range players {
		if name := internal.NormalizePlayerName(p); name != "" {
			roster = append(roster, name)
		}
	}
	return roster
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ladderd: failed to encode response: %v", err)
	}
}
