// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"cogentcore.org/core/tensor/table"
)

// Event is the stimulus injection time with its declared unit, as supplied
// by the invoking process (it matches the delay used to configure the run).
type Event struct {

	// Time is the injection time value
	Time float64

	// Unit is the declared unit of Time
	Unit Unit
}

// Win tags which side of the injection a window covers.
type Win int32

const (
	// Before covers all samples with timestamp < injection time
	Before Win = iota

	// After covers all samples with timestamp >= injection time
	After

	WinN
)

func (w Win) String() string {
	if w == Before {
		return "Before"
	}
	return "After"
}

// Windows is the segmentation of a trace around the injection time.
// Either view may be empty (injection before the first or after the last
// timestamp); downstream statistics must surface that as no-data rather
// than zero.
type Windows struct {

	// Inject is the injection time converted into the trace's unit
	Inject float64

	// Before is the index view of samples strictly before the injection
	Before *table.IndexView

	// After is the index view of samples at or after the injection
	After *table.IndexView
}

// View returns the index view for the given window tag.
func (ws *Windows) View(w Win) *table.IndexView {
	if w == Before {
		return ws.Before
	}
	return ws.After
}

// Segment splits the trace at the injection event.  The event's unit is
// converted into the trace's declared unit first; an undeclared unit on
// either side is an ErrUnitMismatch.
func (tr *Trace) Segment(ev Event) (*Windows, error) {
	t, err := Convert(ev.Time, ev.Unit, tr.Unit)
	if err != nil {
		return nil, err
	}
	bix := table.NewIndexView(tr.Table)
	bix.Filter(func(et *table.Table, row int) bool {
		return et.CellFloat(TimeCol, row) < t
	})
	aix := table.NewIndexView(tr.Table)
	aix.Filter(func(et *table.Table, row int) bool {
		return et.CellFloat(TimeCol, row) >= t
	})
	return &Windows{Inject: t, Before: bix, After: aix}, nil
}
