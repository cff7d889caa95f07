// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis wires the full pipeline for one run: schema extraction,
// channel classification, trace loading, event segmentation, and
// aggregation.  Each stage consumes the previous stage's output as an
// immutable value; nothing is retained across runs.
package analysis

import (
	"fmt"
	"log"

	"github.com/wormsim/eternalpain/lems"
	"github.com/wormsim/eternalpain/motor"
	"github.com/wormsim/eternalpain/stats"
	"github.com/wormsim/eternalpain/trace"
)

// Config holds everything one analysis run needs.
type Config struct {

	// Data is the path of the simulator's numeric output file
	Data string

	// Schema is the path of the LEMS schema file; when empty it is inferred
	// from Data per the c302 naming convention
	Schema string

	// Inject is the stimulus injection time with its declared unit
	Inject trace.Event

	// TraceUnit is the declared unit of the data file's timestamp column
	TraceUnit trace.Unit

	// Tolerance is the unchanged-direction band; <= 0 selects the default
	Tolerance float64

	// Prefixes is the classification taxonomy
	Prefixes motor.Prefixes
}

// Defaults sets the standard c302 configuration: pain delay 2000 ms,
// millisecond timestamps, standard motor prefixes.
func (cfg *Config) Defaults() {
	cfg.Inject = trace.Event{Time: 2000, Unit: trace.Milliseconds}
	cfg.TraceUnit = trace.Milliseconds
	cfg.Prefixes = motor.StandardPrefixes()
}

// Results bundles the outputs of one run for rendering.
type Results struct {

	// Stats is the statistical outcome
	Stats *stats.Results

	// Trace is the loaded time series
	Trace *trace.Trace

	// Channels is the classified schema
	Channels []motor.Channel

	// Windows is the before / after segmentation
	Windows *trace.Windows
}

// Run executes the pipeline.  Any error is terminal for the run: the
// inputs are static files, so a failure means they must be corrected
// (e.g. rerun the simulator), never retried.
func Run(cfg *Config) (*Results, error) {
	if err := cfg.Prefixes.Validate(); err != nil {
		return nil, err
	}
	sp := cfg.Schema
	if sp == "" {
		var err error
		sp, err = lems.FindForData(cfg.Data)
		if err != nil {
			return nil, err
		}
		log.Printf("analysis: using schema %s inferred from %s", sp, cfg.Data)
	}
	cols, err := lems.Columns(sp)
	if err != nil {
		return nil, err
	}
	chans, err := cfg.Prefixes.Channels(cols)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(chans))
	for i, ch := range chans {
		names[i] = ch.Name
	}
	tr, err := trace.Open(cfg.Data, names, cfg.TraceUnit)
	if err != nil {
		return nil, err
	}
	wins, err := tr.Segment(cfg.Inject)
	if err != nil {
		return nil, err
	}
	if wins.Before.Len() == 0 {
		log.Printf("analysis: injection at %g %v is at or before the first sample -- before window is empty", wins.Inject, tr.Unit)
	}
	if wins.After.Len() == 0 {
		log.Printf("analysis: injection at %g %v is after the last sample -- after window is empty", wins.Inject, tr.Unit)
	}
	st := stats.Aggregate(tr, wins, chans, cfg.Tolerance)
	if n := len(st.Unclassified); n > 0 {
		log.Printf("analysis: %d of %d channels matched no motor prefix set", n, len(chans))
	}
	return &Results{Stats: st, Trace: tr, Channels: chans, Windows: wins}, nil
}

// String gives a one-line summary identifying the run.
func (cfg *Config) String() string {
	return fmt.Sprintf("data=%s inject=%g%v unit=%v", cfg.Data, cfg.Inject.Time, cfg.Inject.Unit, cfg.TraceUnit)
}
