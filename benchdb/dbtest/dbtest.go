// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens throwaway grid databases for tests.
package dbtest

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/distfri/friperf/benchdb"
	_ "github.com/distfri/friperf/benchdb/sqlite3"
	_ "github.com/go-sql-driver/mysql"
)

var cloud = flag.Bool("cloud", false, "connect to Cloud SQL database instead of in-memory SQLite")
var cloudsql = flag.String("cloudsql", "", "name of Cloud SQL instance to run tests on")

// createEmptyCloudDB makes a new, empty database for the test.
func createEmptyCloudDB(t *testing.T) (dsn string, cleanup func()) {
	if *cloudsql == "" {
		t.Fatal("-cloud requires -cloudsql")
	}
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	name := "friperf-test-" + base64.RawURLEncoding.EncodeToString(buf)
	prefix := fmt.Sprintf("root:@cloudsql(%s)/", *cloudsql)

	db, err := sql.Open("mysql", prefix)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}
	t.Logf("Using database %q", name)

	return prefix + name, func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewDB makes a connection to an empty testing database, either
// sqlite3 or Cloud SQL depending on the -cloud flag. The database is
// closed when the test ends.
func NewDB(t *testing.T) *benchdb.DB {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *cloud {
		var cleanup func()
		driverName = "mysql"
		dataSourceName, cleanup = createEmptyCloudDB(t)
		t.Cleanup(cleanup)
	}
	d, err := benchdb.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	n, err := d.CountGrids()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("found %d row(s) in Grids, want 0", n)
	}
	return d
}
