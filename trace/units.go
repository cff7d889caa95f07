// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"errors"
	"fmt"
)

// ErrUnitMismatch indicates the injection time and the trace timestamps
// could not be reconciled because one of the units was not declared.
// The surrounding scripts pass the pain delay in milliseconds while jnml
// writes timestamps in seconds, so this must be explicit, never assumed.
var ErrUnitMismatch = errors.New("trace: time units not reconcilable")

// Unit is a time unit for timestamps and injection times.
type Unit int32

const (
	UnitUnknown Unit = iota
	Seconds
	Milliseconds
	UnitN
)

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	default:
		return "unknown"
	}
}

// ParseUnit parses a time-unit name as given on the command line.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "s", "sec", "seconds":
		return Seconds, nil
	case "ms", "msec", "milliseconds":
		return Milliseconds, nil
	}
	return UnitUnknown, fmt.Errorf("%w: unrecognized unit %q", ErrUnitMismatch, s)
}

// Convert converts a time value between units.  Either unit being unknown
// is an ErrUnitMismatch.
func Convert(v float64, from, to Unit) (float64, error) {
	if from == UnitUnknown || to == UnitUnknown {
		return 0, fmt.Errorf("%w: converting %v -> %v", ErrUnitMismatch, from, to)
	}
	if from == to {
		return v, nil
	}
	if from == Milliseconds { // to Seconds
		return v / 1000, nil
	}
	return v * 1000, nil
}
