// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// A Source is a collection of benchmark artifacts, such as the output
// directory of one benchmark campaign.
type Source interface {
	// Open opens the named artifact. If it does not exist, Open
	// returns an error matching ErrDataUnavailable.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Path returns a human-readable location of the named
	// artifact for use in messages.
	Path(name string) string
}

// Dir is a Source reading artifacts from a local directory.
type Dir string

func (d Dir) Path(name string) string {
	return filepath.Join(string(d), filepath.FromSlash(name))
}

func (d Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(d.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Unavailable(d.Path(name), err)
		}
		return nil, err
	}
	return f, nil
}

// Load reads the named artifact from src. See Read.
func Load(ctx context.Context, src Source, name string, kind Kind, cfg Config) (*Grid, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc, src.Path(name), kind, cfg)
}
