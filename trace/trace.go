// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace loads the simulator's numeric output into a time-indexed
// table and segments it around the stimulus injection time.  The data file
// is a headerless whitespace / tab separated table: first column is the
// timestamp, remaining columns align 1:1 with the schema channel order.
// Loading is strict -- any shape or numeric inconsistency is fatal for the
// run, since the downstream statistics must not be built on corrupted input.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/core/tensor"
	"cogentcore.org/core/tensor/table"
)

var (
	// ErrColumnCount indicates a data row whose column count does not equal
	// 1 (time) + the schema channel count.
	ErrColumnCount = errors.New("trace: data column count does not match schema")

	// ErrEmptyData indicates a data file with zero data rows.
	ErrEmptyData = errors.New("trace: data file has no rows")

	// ErrNonMonotonicTime indicates timestamps that go backwards -- a
	// data / format inconsistency, not tolerated silently.
	ErrNonMonotonicTime = errors.New("trace: timestamps not non-decreasing")
)

// TimeCol is the name of the timestamp column in the trace table.
const TimeCol = "Time"

// Trace is one complete simulation recording: a table whose first column is
// the timestamp and whose remaining columns are the recorded channels in
// schema order, plus the declared unit of the timestamps.
type Trace struct {

	// Table holds the data: column 0 is TimeCol, then one FLOAT64 column per
	// channel, named by the full channel name
	Table *table.Table

	// Unit is the declared unit of the timestamp column
	Unit Unit

	// Names are the channel column names in data order (time excluded)
	Names []string
}

// Rows returns the number of samples.
func (tr *Trace) Rows() int {
	return tr.Table.Rows
}

// Time returns the timestamp of the given row, in the trace's unit.
func (tr *Trace) Time(row int) float64 {
	return tr.Table.CellFloat(TimeCol, row)
}

// Value returns the recorded value of the named channel at the given row.
func (tr *Trace) Value(name string, row int) float64 {
	return tr.Table.CellFloat(name, row)
}

// Open loads the data file at path into a Trace.  names is the ordered
// channel list from the schema; unit is the declared timestamp unit and
// must not be UnitUnknown.  Every row must have exactly 1+len(names)
// whitespace-separated numeric fields; timestamps must be non-decreasing.
func Open(path string, names []string, unit Unit) (*Trace, error) {
	if unit == UnitUnknown {
		return nil, fmt.Errorf("%w: timestamp unit must be declared for %s", ErrUnitMismatch, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	defer f.Close()

	ncol := 1 + len(names)
	var rows [][]float64
	ln := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		flds := strings.Fields(line)
		if len(flds) != ncol {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d (1 time + %d channels) in %s",
				ErrColumnCount, ln, len(flds), ncol, len(names), path)
		}
		vals := make([]float64, ncol)
		for i, fld := range flds {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("trace: row %d col %d: bad numeric value %q in %s", ln, i+1, fld, path)
			}
			vals[i] = v
		}
		if len(rows) > 0 && vals[0] < rows[len(rows)-1][0] {
			return nil, fmt.Errorf("%w: row %d time %g < previous %g in %s",
				ErrNonMonotonicTime, ln, vals[0], rows[len(rows)-1][0], path)
		}
		rows = append(rows, vals)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}

	sch := table.Schema{{TimeCol, tensor.FLOAT64, nil, nil}}
	for _, nm := range names {
		sch = append(sch, table.Column{nm, tensor.FLOAT64, nil, nil})
	}
	dt := &table.Table{}
	dt.SetMetaData("name", "ActivityTrace")
	dt.SetMetaData("read-only", "true")
	dt.SetFromSchema(sch, len(rows))
	for ri, vals := range rows {
		dt.SetCellFloat(TimeCol, ri, vals[0])
		for ci, nm := range names {
			dt.SetCellFloat(nm, ri, vals[ci+1])
		}
	}
	return &Trace{Table: dt, Unit: unit, Names: names}, nil
}
