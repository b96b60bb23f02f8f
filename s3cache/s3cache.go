/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides a small blob store over Amazon S3. It is
 * based on the original github.com/sourcegraph/s3cache but updated to
 * use the more modern aws-sdk-go-v2 and golang standard library
 * functions. The ladder uses it two ways: as an httpcache.Cache for the
 * legacy-archive HTTP client (Get/Set/Delete), and as an explicit,
 * error-returning store for baseline rating snapshots (Fetch/Put/
 * Remove).
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ErrNotFound indicates the requested key has no object in the bucket.
var ErrNotFound = errors.New("s3cache: key not found")

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache should use when interacting
	// with S3. By default this is initialized in Init() with the
	// default Config, but callers can optionally override this with
	// their own s3 client if desired.
	Client *s3.Client

	// bucketName is the name of the S3 bucket. Example: "mybucket".
	bucketName string

	// gzip indicates whether entries should be gzipped in Put and
	// gunzipped in Fetch. If true, object keys will have the suffix
	// ".gz" appended.
	gzip bool

	// logErrors controls whether best-effort operations log failures
	logErrors bool

	// The context to specify when initiating s3 requests
	ctx context.Context
}

// New returns a new Cache with underlying storage in the specified
// Amazon S3 bucket. Additionally, specify whether objects persisted in
// the cache should be compressed with gzip or not. Callers should take
// care to invoke Init() on the returned Cache object before use.
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	logErrorsIn bool) *Cache {

	return &Cache{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// Init loads AWS configuration and verifies the bucket is accessible.
//
// The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
// To use different credentials, modify the returned Cache object's
// Config and Client fields.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	// Permission check: verify bucket exists and is accessible
	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w", c.bucketName, err)
	}

	// Permission check: verify ability to list objects (read/list permissions)
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w", c.bucketName, err)
	}

	return nil
}

// Fetch retrieves the object stored under key. A missing key returns
// ErrNotFound.
func (c *Cache) Fetch(key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3cache.fetch: get %v%v: %w", c.bucketName,
			*input.Key, err)
	}
	defer resp.Body.Close()

	rdr := io.Reader(resp.Body)
	if c.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("s3cache.fetch: open compressed object %v%v: %w",
				c.bucketName, *input.Key, err)
		}
		defer gz.Close()
		rdr = gz
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3cache.fetch: read %v%v: %w", c.bucketName,
			*input.Key, err)
	}
	return data, nil
}

// Put stores data under key, gzipping first when the cache was created
// with compression enabled.
func (c *Cache) Put(key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3cache.put: gzip %v%v: %w", c.bucketName,
				*input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3cache.put: close gzip writer for %v%v: %w",
				c.bucketName, *input.Key, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		return fmt.Errorf("s3cache.put: put %v%v: %w", c.bucketName,
			*input.Key, err)
	}
	return nil
}

// Remove deletes the object stored under key. Removing a missing key is
// not an error.
func (c *Cache) Remove(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}
	if _, err := c.Client.DeleteObject(c.ctx, input); err != nil {
		return fmt.Errorf("s3cache.remove: delete %v%v: %w", c.bucketName,
			*input.Key, err)
	}
	return nil
}

// Get, Set, and Delete implement httpcache.Cache. The http cache treats
// storage as best-effort, so failures only log (when enabled) and
// manifest as cache misses.

func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := c.Fetch(key)
	if err != nil {
		if c.logErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("s3cache.get: %v", err)
		}
		return []byte{}, false
	}
	return data, true
}

func (c *Cache) Set(key string, data []byte) {
	if err := c.Put(key, data); err != nil && c.logErrors {
		log.Printf("s3cache.set: %v", err)
	}
}

func (c *Cache) Delete(key string) {
	if err := c.Remove(key); err != nil && c.logErrors {
		log.Printf("s3cache.delete: %v", err)
	}
}

// objectKey hashes cache keys (typically URLs or snapshot names) into
// fixed-length object keys under a common prefix.
func (c *Cache) objectKey(key string) string {
	const pathPrefix = "s3cache"

	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("/%v/%v", pathPrefix, hex.EncodeToString(h.Sum(nil)))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}
