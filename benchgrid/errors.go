// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrDataUnavailable is returned when a benchmark artifact
	// does not exist. Errors matching it also match fs.ErrNotExist
	// when the cause was a missing local file.
	ErrDataUnavailable = errors.New("benchmark data unavailable")

	// ErrMalformedRecord is matched by every *RecordError.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrIncompatibleGrids is returned when grids of different
	// shapes or units are combined.
	ErrIncompatibleGrids = errors.New("incompatible grids")

	// ErrIndexOutOfRange is returned when an exponent falls
	// outside the configured range.
	ErrIndexOutOfRange = errors.New("exponent out of range")
)

// A RecordError reports a malformed record or a record count that
// does not fit the grid. Line is 0 when the error concerns the file
// as a whole.
type RecordError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *RecordError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// Is makes errors.Is(err, ErrMalformedRecord) succeed.
func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// unavailableError wraps the underlying not-found cause so that both
// ErrDataUnavailable and the cause match.
type unavailableError struct {
	name string
	err  error
}

func (e *unavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.name, ErrDataUnavailable)
}

func (e *unavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}

func (e *unavailableError) Unwrap() error { return e.err }

// Unavailable returns an error reporting that name does not exist.
// Sources use it so missing data looks the same everywhere.
func Unavailable(name string, cause error) error {
	if cause == nil {
		cause = fs.ErrNotExist
	}
	return &unavailableError{name, cause}
}
