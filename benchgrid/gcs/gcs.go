// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements a benchgrid.Source backed by objects in a
// Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/distfri/friperf/benchgrid"
)

const scheme = "gs://"

// IsURL reports whether s names a Cloud Storage location.
func IsURL(s string) bool {
	return strings.HasPrefix(s, scheme)
}

// ParseURL splits a gs://bucket/prefix URL into its bucket and object
// prefix. The prefix may be empty.
func ParseURL(u string) (bucket, prefix string, err error) {
	if !IsURL(u) {
		return "", "", fmt.Errorf("%q is not a %s URL", u, scheme)
	}
	bucket, prefix, _ = strings.Cut(strings.TrimPrefix(u, scheme), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%q has no bucket", u)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// A Source reads artifacts stored under one prefix of a bucket.
type Source struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ benchgrid.Source = (*Source)(nil)

// New returns a Source for the gs://bucket/prefix URL u. The client is
// owned by the caller and may be shared between Sources.
func New(client *storage.Client, u string) (*Source, error) {
	bucket, prefix, err := ParseURL(u)
	if err != nil {
		return nil, err
	}
	return &Source{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *Source) object(name string) string {
	return path.Join(s.prefix, name)
}

func (s *Source) Path(name string) string {
	return scheme + s.bucket + "/" + s.object(name)
}

func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, benchgrid.Unavailable(s.Path(name), err)
		}
		return nil, fmt.Errorf("%s: %w", s.Path(name), err)
	}
	return r, nil
}
