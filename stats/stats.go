// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats computes per-group activity statistics for the before and
// after windows and the comparison between them.
//
// The group mean is a single pooled mean over all (channel, sample) value
// pairs in the window -- not a mean of per-channel means.  The two differ
// whenever a group's channels are unevenly represented; pooling matches
// averaging the raw recorded values, which is what the behavioral
// comparison is about.  Standard deviations are likewise pooled
// (population form).  A window with no samples, or a group with no
// channels, yields an Undefined mean -- "no data" is never coerced to zero.
package stats

import (
	"fmt"
	"math"

	"cogentcore.org/core/tensor"
	"cogentcore.org/core/tensor/agg"
	"cogentcore.org/core/tensor/split"
	"cogentcore.org/core/tensor/table"
	"github.com/wormsim/eternalpain/motor"
	"github.com/wormsim/eternalpain/trace"
)

// DefTolerance is the default band on |delta| below which the direction is
// reported as unchanged rather than a noise-driven increase / decrease.
// Small relative to membrane-voltage scale activity values.
const DefTolerance = 1e-4

// Direction is the sign of the before -> after change under the tolerance.
type Direction int32

const (
	Unchanged Direction = iota
	Increase
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "unchanged"
	}
}

// Mean is a pooled mean that keeps "no data" distinct from zero.
type Mean struct {

	// Value is the pooled arithmetic mean; meaningless unless Defined
	Value float64

	// Std is the pooled population standard deviation; meaningless unless Defined
	Std float64

	// N is the number of (channel, sample) values pooled
	N int

	// Defined is false when the window had no samples or the group no channels
	Defined bool
}

// GroupStat is the per-window summary for one group.
type GroupStat struct {

	// Group is the locomotion group
	Group motor.Group

	// Channels is the number of channels classified into the group
	Channels int

	// Before is the pooled mean over the before window
	Before Mean

	// After is the pooled mean over the after window
	After Mean
}

// Comparison is the before -> after change for one compared group.
type Comparison struct {

	// Group is the locomotion group
	Group motor.Group

	// Delta is After.Value - Before.Value; meaningless unless Defined
	Delta float64

	// Pct is Delta as a percentage of the before mean; 0 when the before
	// mean is 0
	Pct float64

	// Direction is the sign of Delta under the tolerance band
	Direction Direction

	// Defined is true only when both window means are defined
	Defined bool
}

// Verdict is the behavioral interpretation of the two comparisons.
type Verdict int32

const (
	// NoVerdict means one of the comparisons was undefined
	NoVerdict Verdict = iota

	// AggressiveAvoidance means reversal activity rose after the stimulus,
	// and rose more than forward activity
	AggressiveAvoidance

	// ForwardInhibition means forward activity fell after the stimulus
	ForwardInhibition

	// Inconclusive means neither pattern held
	Inconclusive
)

// Results is the full statistical outcome of one analysis run.
type Results struct {

	// Inject is the injection time in the trace's unit
	Inject float64

	// Unit is the trace's time unit
	Unit trace.Unit

	// Forward and Reversal are the per-group window summaries
	Forward, Reversal GroupStat

	// ForwardCmp and ReversalCmp are the before -> after comparisons
	ForwardCmp, ReversalCmp Comparison

	// Unclassified are channels matching neither prefix set -- a
	// schema / classification drift diagnostic, not a failure
	Unclassified []motor.Channel

	// Tolerance is the band used for the direction calls
	Tolerance float64

	// ChanStats is the long-form per-(channel, window) sum table the group
	// aggregation was computed from
	ChanStats *table.Table

	// GroupAgg is the grouped aggregate table from ChanStats
	GroupAgg *table.Table
}

// Aggregate computes the per-group window statistics and comparisons for
// the classified channels over the segmented trace.  tol <= 0 selects
// DefTolerance.
func Aggregate(tr *trace.Trace, wins *trace.Windows, chans []motor.Channel, tol float64) *Results {
	if tol <= 0 {
		tol = DefTolerance
	}
	res := &Results{Inject: wins.Inject, Unit: tr.Unit, Tolerance: tol}
	res.Unclassified = motor.ByGroup(chans, motor.Unclassified)

	res.ChanStats = chanSums(wins, chans)
	if res.ChanStats.Rows > 0 {
		res.GroupAgg = groupSums(res.ChanStats)
	} else {
		// nothing classified or both windows empty: no aggregation possible
		res.GroupAgg = res.ChanStats
	}

	res.Forward = groupStat(res.GroupAgg, motor.Forward, len(motor.ByGroup(chans, motor.Forward)))
	res.Reversal = groupStat(res.GroupAgg, motor.Reversal, len(motor.ByGroup(chans, motor.Reversal)))
	res.ForwardCmp = compare(&res.Forward, tol)
	res.ReversalCmp = compare(&res.Reversal, tol)
	return res
}

// chanSums builds the long-form table: one row per (classified channel,
// non-empty window) holding the sum, sum of squares, and count of that
// channel's values in that window.
func chanSums(wins *trace.Windows, chans []motor.Channel) *table.Table {
	dt := &table.Table{}
	dt.SetMetaData("name", "ChanWindowStats")
	sch := table.Schema{
		{"Channel", tensor.STRING, nil, nil},
		{"Group", tensor.STRING, nil, nil},
		{"Window", tensor.STRING, nil, nil},
		{"Sum", tensor.FLOAT64, nil, nil},
		{"SumSq", tensor.FLOAT64, nil, nil},
		{"N", tensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
	row := 0
	for _, ch := range chans {
		if ch.Group == motor.Unclassified {
			continue
		}
		for w := trace.Before; w < trace.WinN; w++ {
			ix := wins.View(w)
			if ix.Len() == 0 {
				continue
			}
			dt.SetNumRows(row + 1)
			dt.SetCellString("Channel", row, ch.Name)
			dt.SetCellString("Group", row, ch.Group.String())
			dt.SetCellString("Window", row, w.String())
			dt.SetCellFloat("Sum", row, agg.Sum(ix, ch.Name)[0])
			dt.SetCellFloat("SumSq", row, agg.SumSq(ix, ch.Name)[0])
			dt.SetCellFloat("N", row, float64(ix.Len()))
			row++
		}
	}
	return dt
}

// groupSums pools the per-channel sums by (Group, Window).
func groupSums(dt *table.Table) *table.Table {
	ix := table.NewIndexView(dt)
	spl := split.GroupBy(ix, []string{"Group", "Window"})
	split.Agg(spl, "Sum", agg.AggSum)
	split.Agg(spl, "SumSq", agg.AggSum)
	split.Agg(spl, "N", agg.AggSum)
	return spl.AggsToTable(table.AddAggName)
}

// groupStat extracts the pooled means for one group from the aggregate
// table.  Absent rows (empty window or no channels) stay Undefined.
func groupStat(gt *table.Table, g motor.Group, nchan int) GroupStat {
	gs := GroupStat{Group: g, Channels: nchan}
	for ri := 0; ri < gt.Rows; ri++ {
		if gt.CellString("Group", ri) != g.String() {
			continue
		}
		sum := gt.CellFloat("Sum:Sum", ri)
		ssq := gt.CellFloat("SumSq:Sum", ri)
		n := gt.CellFloat("N:Sum", ri)
		if n <= 0 {
			continue
		}
		mean := sum / n
		vr := ssq/n - mean*mean
		if vr < 0 { // numerical noise
			vr = 0
		}
		m := Mean{Value: mean, Std: math.Sqrt(vr), N: int(n), Defined: true}
		if gt.CellString("Window", ri) == trace.Before.String() {
			gs.Before = m
		} else {
			gs.After = m
		}
	}
	return gs
}

// compare derives the before -> after comparison for one group.
func compare(gs *GroupStat, tol float64) Comparison {
	cmp := Comparison{Group: gs.Group}
	if !gs.Before.Defined || !gs.After.Defined {
		return cmp
	}
	cmp.Defined = true
	cmp.Delta = gs.After.Value - gs.Before.Value
	if gs.Before.Value != 0 {
		cmp.Pct = cmp.Delta / gs.Before.Value * 100
	}
	switch {
	case math.Abs(cmp.Delta) <= tol:
		cmp.Direction = Unchanged
	case cmp.Delta > 0:
		cmp.Direction = Increase
	default:
		cmp.Direction = Decrease
	}
	return cmp
}

// Verdict interprets the two comparisons: a reversal increase exceeding
// the forward change is aggressive avoidance; otherwise a forward
// decrease is movement inhibition.
func (res *Results) Verdict() Verdict {
	if !res.ForwardCmp.Defined || !res.ReversalCmp.Defined {
		return NoVerdict
	}
	switch {
	case res.ReversalCmp.Delta > res.ForwardCmp.Delta && res.ReversalCmp.Delta > res.Tolerance:
		return AggressiveAvoidance
	case res.ForwardCmp.Delta < -res.Tolerance:
		return ForwardInhibition
	default:
		return Inconclusive
	}
}

// Stat returns the GroupStat for a compared group.
func (res *Results) Stat(g motor.Group) (*GroupStat, error) {
	switch g {
	case motor.Forward:
		return &res.Forward, nil
	case motor.Reversal:
		return &res.Reversal, nil
	}
	return nil, fmt.Errorf("stats: group %v is not statistically compared", g)
}
