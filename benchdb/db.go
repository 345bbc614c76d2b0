// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdb archives benchmark grids in a SQL database so that
// campaigns can be compared after their artifacts are gone.
package benchdb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/distfri/friperf/benchgrid"
	"github.com/distfri/friperf/benchunit"
)

// DB is a database of benchmark grids. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertGrid        *sql.Stmt
	insertMeasurement *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Grids (
	GridID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Protocol VARCHAR(64) NOT NULL,
	Metric VARCHAR(64) NOT NULL,
	Unit VARCHAR(16) NOT NULL,
	Source VARCHAR(1024) NOT NULL,
	InstanceLo INT NOT NULL,
	InstanceHi INT NOT NULL,
	MachinesLo INT NOT NULL,
	MachinesHi INT NOT NULL
);
CREATE TABLE IF NOT EXISTS Measurements (
	GridID BIGINT UNSIGNED,
	InstanceSize INT,
	Machines INT,
	Value DOUBLE NOT NULL,
	PRIMARY KEY (GridID, InstanceSize, Machines),
	FOREIGN KEY (GridID) REFERENCES Grids(GridID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS GridsProtocolMetric ON Grids(Protocol, Metric);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName selects the SQL dialect.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertGrid, err = db.sql.Prepare(`INSERT INTO Grids(Protocol, Metric, Unit, Source, InstanceLo, InstanceHi, MachinesLo, MachinesHi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	db.insertMeasurement, err = db.sql.Prepare("INSERT INTO Measurements(GridID, InstanceSize, Machines, Value) VALUES (?, ?, ?, ?)")
	return err
}

// GridInfo describes where a stored grid came from.
type GridInfo struct {
	ID       int64 // set by InsertGrid
	Protocol string
	Metric   string
	Source   string // artifact path or URL
}

// ErrNotFound is returned by Grid when no grid has the requested ID.
var ErrNotFound = errors.New("grid not found")

// InsertGrid stores g and returns its ID. The grid and all its
// measurements are written in a single transaction.
func (db *DB) InsertGrid(ctx context.Context, info GridInfo, g *benchgrid.Grid) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	cfg := g.Config
	res, err := tx.StmtContext(ctx, db.insertGrid).ExecContext(ctx,
		info.Protocol, info.Metric, g.Unit.Name, info.Source,
		cfg.InstanceSize.Lo, cfg.InstanceSize.Hi, cfg.Machines.Lo, cfg.Machines.Hi)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	ins := tx.StmtContext(ctx, db.insertMeasurement)
	for _, is := range cfg.InstanceSize.Exponents() {
		for _, m := range cfg.Machines.Exponents() {
			v, err := g.At(is, m)
			if err != nil {
				return 0, err
			}
			if _, err := ins.ExecContext(ctx, id, is, m, v); err != nil {
				return 0, err
			}
		}
	}
	return id, nil
}

// Grid loads the grid stored under id.
func (db *DB) Grid(ctx context.Context, id int64) (GridInfo, *benchgrid.Grid, error) {
	info := GridInfo{ID: id}
	var unit string
	var cfg benchgrid.Config
	err := db.sql.QueryRowContext(ctx,
		"SELECT Protocol, Metric, Unit, Source, InstanceLo, InstanceHi, MachinesLo, MachinesHi FROM Grids WHERE GridID = ?", id).
		Scan(&info.Protocol, &info.Metric, &unit, &info.Source,
			&cfg.InstanceSize.Lo, &cfg.InstanceSize.Hi, &cfg.Machines.Lo, &cfg.Machines.Hi)
	if err == sql.ErrNoRows {
		return info, nil, fmt.Errorf("grid %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return info, nil, err
	}
	u, err := benchunit.ParseUnit(unit)
	if err != nil {
		return info, nil, fmt.Errorf("grid %d: %v", id, err)
	}
	if err := cfg.Validate(); err != nil {
		return info, nil, fmt.Errorf("grid %d: %v", id, err)
	}

	values := make([][]float64, cfg.InstanceSize.Len())
	for i := range values {
		values[i] = make([]float64, cfg.Machines.Len())
	}
	rows, err := db.sql.QueryContext(ctx, "SELECT InstanceSize, Machines, Value FROM Measurements WHERE GridID = ?", id)
	if err != nil {
		return info, nil, err
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		var is, m int
		var v float64
		if err := rows.Scan(&is, &m, &v); err != nil {
			return info, nil, err
		}
		if !cfg.InstanceSize.Contains(is) || !cfg.Machines.Contains(m) {
			return info, nil, fmt.Errorf("grid %d: measurement (2^%d, 2^%d) outside %v", id, is, m, cfg)
		}
		values[is-cfg.InstanceSize.Lo][m-cfg.Machines.Lo] = v
		n++
	}
	if err := rows.Err(); err != nil {
		return info, nil, err
	}
	if n != cfg.Cells() {
		return info, nil, fmt.Errorf("grid %d: have %d measurements, want %d", id, n, cfg.Cells())
	}
	g, err := benchgrid.NewGrid(cfg, u, values)
	return info, g, err
}

// CountGrids returns the number of grids stored in the database.
func (db *DB) CountGrids() (int, error) {
	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Grids").Scan(&count)
	return count, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertGrid, db.insertMeasurement} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
