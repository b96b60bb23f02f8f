/* Copyright (c) 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gregjones/httpcache/test"
	"github.com/mikeb26/leagueladder/internal"
	"github.com/mikeb26/leagueladder/s3cache"
)

func TestS3Cache(t *testing.T) {
	cache := s3cache.New(context.Background(), internal.WebCacheBucket, false, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err))
	}

	test.Cache(t, cache)
}

func TestS3CacheWithGzip(t *testing.T) {
	cache := s3cache.New(context.Background(), internal.WebCacheBucket, true, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err))
	}

	test.Cache(t, cache)
}

func TestS3CacheExplicit(t *testing.T) {
	cache := s3cache.New(context.Background(), internal.SnapshotBucket, true, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.SnapshotBucket, err))
	}

	const key = "s3cache-test-explicit"
	want := []byte(`{"Alice":1210.397}`)

	if err := cache.Put(key, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := cache.Fetch(key)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Fetch = %q; want %q", got, want)
	}
	if err := cache.Remove(key); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := cache.Fetch(key); !errors.Is(err, s3cache.ErrNotFound) {
		t.Errorf("Fetch after Remove = %v; want s3cache.ErrNotFound", err)
	}
}
