// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package eternalpain is the overall repository for the c302 nematode
pain-response analysis suite, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* lems: extracts the ordered list of recorded channels from the LEMS
simulation description that the c302 model generator writes next to its
numeric output file -- the .dat file itself has no header row.

* motor: classifies channels into forward (VB, DB) and reversal (VD, DD)
motor-neuron groups using explicit, configurable prefix sets.

* trace: loads the simulator's numeric output into a time-indexed table
and segments it into before / after windows around the stimulus
injection time, with explicit time-unit reconciliation.

* stats: computes pooled per-group activity means for each window and the
before -> after comparison that supports the behavioral conclusion.

* report: renders the textual summary and the activity plot with the
injection point marked.

* analysis: wires the above into the single-shot analysis pipeline.

* examples: these compile into runnable programs.  examples/analyze is the
headless analysis command; examples/painloop drives the simulator in a
loop and re-analyzes after every run.
*/
package eternalpain
