/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package snapshot persists named baseline rating sets as gzipped JSON
// blobs in S3. A snapshot taken after one season's final recompute is
// the natural baseline input for the next season's recomputes.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
	"github.com/mikeb26/leagueladder/s3cache"
)

var ErrNotFound = errors.New("snapshot: no snapshot with that name")

// BlobStore is the subset of s3cache.Cache the snapshot store needs.
type BlobStore interface {
	Fetch(key string) ([]byte, error)
	Put(key string, data []byte) error
	Remove(key string) error
}

type Store struct {
	blobs BlobStore
}

// NewStore opens the default S3-backed snapshot store.
func NewStore(ctx context.Context) (*Store, error) {
	cache := s3cache.New(ctx, internal.SnapshotBucket, true, false)
	if err := cache.Init(); err != nil {
		return nil, fmt.Errorf("snapshot: opening blob store: %w", err)
	}
	return &Store{blobs: cache}, nil
}

// NewStoreWithBlobs wires an alternate blob backend; used by tests.
func NewStoreWithBlobs(blobs BlobStore) *Store {
	return &Store{blobs: blobs}
}

// Save persists ratings under name, overwriting any prior snapshot with
// the same name.
func (s *Store) Save(name string, ratings elo.Ratings) error {
	data, err := json.Marshal(ratings)
	if err != nil {
		return fmt.Errorf("snapshot.save: marshaling %q: %w", name, err)
	}
	if err := s.blobs.Put(blobKey(name), data); err != nil {
		return fmt.Errorf("snapshot.save: storing %q: %w", name, err)
	}
	return nil
}

// Load retrieves the named snapshot as a baseline rating set.
func (s *Store) Load(name string) (elo.Ratings, error) {
	data, err := s.blobs.Fetch(blobKey(name))
	if err != nil {
		if errors.Is(err, s3cache.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("snapshot.load: fetching %q: %w", name, err)
	}

	var ratings elo.Ratings
	if err := json.Unmarshal(data, &ratings); err != nil {
		return nil, fmt.Errorf("snapshot.load: parsing %q: %w", name, err)
	}
	return ratings, nil
}

// Delete removes the named snapshot.
func (s *Store) Delete(name string) error {
	if err := s.blobs.Remove(blobKey(name)); err != nil {
		return fmt.Errorf("snapshot.delete: removing %q: %w", name, err)
	}
	return nil
}

func blobKey(name string) string {
	return "snapshot/" + name
}
