// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/wormsim/eternalpain/motor"
	"github.com/wormsim/eternalpain/stats"
	"github.com/wormsim/eternalpain/trace"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

func sampleConfig() *Config {
	cfg := &Config{}
	cfg.Defaults()
	cfg.Data = filepath.Join("testdata", "c302_A_Sample.dat")
	cfg.Schema = filepath.Join("testdata", "LEMS_c302_A_Sample.xml")
	return cfg
}

func TestRun(t *testing.T) {
	res, err := Run(sampleConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Channels) != 7 {
		t.Fatalf("channels = %d, want 7", len(res.Channels))
	}
	st := res.Stats
	if math.Abs(st.Reversal.Before.Value-0.01) > difTol {
		t.Errorf("reversal before = %+v, want 0.01", st.Reversal.Before)
	}
	if math.Abs(st.Reversal.After.Value-0.9) > difTol {
		t.Errorf("reversal after = %+v, want 0.9", st.Reversal.After)
	}
	if st.ReversalCmp.Direction != stats.Increase {
		t.Errorf("reversal direction = %v, want increase", st.ReversalCmp.Direction)
	}
	if st.ForwardCmp.Direction != stats.Unchanged {
		t.Errorf("forward direction = %v, want unchanged", st.ForwardCmp.Direction)
	}
	if v := st.Verdict(); v != stats.AggressiveAvoidance {
		t.Errorf("verdict = %v, want AggressiveAvoidance", v)
	}
	if len(st.Unclassified) != 1 || st.Unclassified[0].Base != "AVBL" {
		t.Errorf("unclassified = %+v, want just AVBL", st.Unclassified)
	}
}

// the schema path is inferred from the data file name when not given
func TestRunInfersSchema(t *testing.T) {
	cfg := sampleConfig()
	cfg.Schema = ""
	if _, err := Run(cfg); err != nil {
		t.Fatal(err)
	}
}

func TestRunInjectInSeconds(t *testing.T) {
	cfg := sampleConfig()
	cfg.Inject = trace.Event{Time: 2, Unit: trace.Seconds}
	res, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Inject != 2000 {
		t.Errorf("converted inject = %g ms, want 2000", res.Stats.Inject)
	}
	if res.Windows.Before.Len() != 4 || res.Windows.After.Len() != 4 {
		t.Errorf("split %d/%d, want 4/4", res.Windows.Before.Len(), res.Windows.After.Len())
	}
}

func TestRunColumnMismatch(t *testing.T) {
	cfg := sampleConfig()
	cfg.Data = filepath.Join("testdata", "c302_A_Short.dat")
	cfg.Schema = filepath.Join("testdata", "LEMS_c302_A_Sample.xml")
	_, err := Run(cfg)
	if !errors.Is(err, trace.ErrColumnCount) {
		t.Errorf("short row: got %v, want ErrColumnCount", err)
	}
}

func TestRunMissingSchema(t *testing.T) {
	cfg := sampleConfig()
	cfg.Data = filepath.Join(t.TempDir(), "c302_Z_Nope.dat")
	_, err := Run(cfg)
	if err == nil {
		t.Fatal("missing inputs must fail")
	}
}

func TestRunAmbiguousPrefixes(t *testing.T) {
	cfg := sampleConfig()
	cfg.Prefixes = motor.Prefixes{Forward: []string{"V"}, Reversal: []string{"VD"}}
	_, err := Run(cfg)
	if !errors.Is(err, motor.ErrAmbiguousPrefixes) {
		t.Errorf("overlapping taxonomy: got %v, want ErrAmbiguousPrefixes", err)
	}
}

func TestRunUndeclaredUnit(t *testing.T) {
	cfg := sampleConfig()
	cfg.TraceUnit = trace.UnitUnknown
	_, err := Run(cfg)
	if !errors.Is(err, trace.ErrUnitMismatch) {
		t.Errorf("undeclared trace unit: got %v, want ErrUnitMismatch", err)
	}
}

// two runs over the same inputs must agree exactly
func TestRunDeterministic(t *testing.T) {
	r1, err := Run(sampleConfig())
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Run(sampleConfig())
	if err != nil {
		t.Fatal(err)
	}
	if r1.Stats.Reversal.Before.Value != r2.Stats.Reversal.Before.Value ||
		r1.Stats.Reversal.After.Value != r2.Stats.Reversal.After.Value ||
		r1.Stats.Forward.Before.Value != r2.Stats.Forward.Before.Value {
		t.Error("identical inputs produced different statistics")
	}
}
