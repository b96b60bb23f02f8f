/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sheetstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// newTestStore returns a Store whose sheets service is pointed at a
// local httptest server instead of the real API.
func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithoutAuthentication(), option.WithEndpoint(ts.URL))
	if err != nil {
		t.Fatalf("Failed to create sheets service: %v", err)
	}

	return &Store{service: srv, spreadsheetID: "testsheet"}
}

func TestLoadBaseline(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"baseline!A2:B","majorDimension":"ROWS",` +
			`"values":[["alice","1307.25"],["bob","1150"],["",""]]}`))
	})

	baseline, err := st.LoadBaseline(ctx)
	if err != nil {
		t.Fatalf("Expected baseline load to succeed, got %v", err)
	}
	if len(baseline) != 2 {
		t.Fatalf("Expected 2 baseline entries, got %v", len(baseline))
	}
	if baseline["alice"] != 1307.25 {
		t.Errorf("Expected alice at 1307.25, got %v", baseline["alice"])
	}
}

func TestLoadBaselineMissingSheet(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,` +
			`"message":"Unable to parse range: baseline!A2:B",` +
			`"status":"INVALID_ARGUMENT"}}`))
	})

	baseline, err := st.LoadBaseline(ctx)
	if err != nil {
		t.Fatalf("Expected missing sheet to read as cold start, got %v", err)
	}
	if len(baseline) != 0 {
		t.Errorf("Expected empty baseline, got %v", baseline)
	}
}

func TestLoadBaselineServerError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"Internal error",` +
			`"status":"INTERNAL"}}`))
	})

	_, err := st.LoadBaseline(ctx)
	if err == nil {
		t.Fatal("Expected a server failure to surface, got nil error")
	}
}

func TestLoadBaselineAuthError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":` +
			`"The caller does not have permission",` +
			`"status":"PERMISSION_DENIED"}}`))
	})

	_, err := st.LoadBaseline(ctx)
	if err == nil {
		t.Fatal("Expected a permission failure to surface, got nil error")
	}
}
