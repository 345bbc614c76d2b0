// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcs

import "testing"

func TestParseURL(t *testing.T) {
	for _, test := range []struct {
		in             string
		bucket, prefix string
		ok             bool
	}{
		{"gs://bench/21_26_0_8_parallel_fri/", "bench", "21_26_0_8_parallel_fri", true},
		{"gs://bench/a/b", "bench", "a/b", true},
		{"gs://bench", "bench", "", true},
		{"gs:///x", "", "", false},
		{"./benches/bench_data", "", "", false},
	} {
		bucket, prefix, err := ParseURL(test.in)
		if (err == nil) != test.ok {
			t.Errorf("ParseURL(%q) error = %v, want ok=%v", test.in, err, test.ok)
			continue
		}
		if bucket != test.bucket || prefix != test.prefix {
			t.Errorf("ParseURL(%q) = %q, %q, want %q, %q", test.in, bucket, prefix, test.bucket, test.prefix)
		}
	}
}

func TestPath(t *testing.T) {
	// Path never touches the client.
	s, err := New(nil, "gs://bench/dbf/")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.Path("distributed_batched_fri_comm_cost"), "gs://bench/dbf/distributed_batched_fri_comm_cost"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	s, err = New(nil, "gs://bench")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.Path("x.json"), "gs://bench/x.json"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}
