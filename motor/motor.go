// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package motor classifies recorded channels into locomotion groups.
// The c302 connectome names its body-wall motor neuron populations by
// class: VB and DB drive forward locomotion, VD and DD participate in the
// backward / avoidance circuit.  Classification is a pure prefix match on
// the base channel name (quantity suffix already stripped) against two
// explicit, disjoint prefix sets.
package motor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wormsim/eternalpain/lems"
)

// ErrAmbiguousPrefixes indicates the forward and reversal prefix sets
// overlap, so some channel name could match both -- a configuration error
// rejected up front, never resolved at classification time.
var ErrAmbiguousPrefixes = errors.New("motor: forward and reversal prefix sets overlap")

// Group is the functional locomotion group of a channel.
type Group int32

const (
	// Unclassified is any channel matching neither prefix set -- reported as
	// a diagnostic count, never statistically compared.
	Unclassified Group = iota

	// Forward is the forward-locomotion motor group.
	Forward

	// Reversal is the backward / avoidance motor group.
	Reversal

	GroupN
)

func (g Group) String() string {
	switch g {
	case Forward:
		return "Forward"
	case Reversal:
		return "Reversal"
	default:
		return "Unclassified"
	}
}

// Prefixes is the classification configuration: two explicit sets of name
// prefixes.  Matching is case-sensitive and anchored at the start of the
// base name (prefix match, not substring).  A valid configuration has no
// overlap between the sets: no prefix in one set may equal or be a prefix
// of any prefix in the other.
type Prefixes struct {

	// Forward is the set of base-name prefixes mapped to the Forward group
	Forward []string

	// Reversal is the set of base-name prefixes mapped to the Reversal group
	Reversal []string
}

// StandardPrefixes returns the standard c302 motor taxonomy:
// VB, DB forward; VD, DD reversal.
func StandardPrefixes() Prefixes {
	return Prefixes{
		Forward:  []string{"VB", "DB"},
		Reversal: []string{"VD", "DD"},
	}
}

// Validate rejects configurations where a name could match both sets.
func (pr *Prefixes) Validate() error {
	for _, fp := range pr.Forward {
		for _, rp := range pr.Reversal {
			if strings.HasPrefix(fp, rp) || strings.HasPrefix(rp, fp) {
				return fmt.Errorf("%w: %q vs %q", ErrAmbiguousPrefixes, fp, rp)
			}
		}
	}
	return nil
}

// Classify maps a base channel name to its group.  Pure function of the
// configuration; Validate must have been called first so that at most one
// set can match.
func (pr *Prefixes) Classify(base string) Group {
	for _, p := range pr.Forward {
		if strings.HasPrefix(base, p) {
			return Forward
		}
	}
	for _, p := range pr.Reversal {
		if strings.HasPrefix(base, p) {
			return Reversal
		}
	}
	return Unclassified
}

// Channel is one recorded signal with its classification and its position
// in the numeric data file.  Immutable once built.
type Channel struct {

	// Name is the full column id from the schema, e.g. VB2_v
	Name string

	// Base is the population identifier the classification matched, e.g. VB2
	Base string

	// Group is the locomotion group
	Group Group

	// Column is the 0-based position among the data columns (time excluded)
	Column int
}

// Channels validates the configuration and classifies the full ordered
// schema column list, assigning data-column indexes in schema order.
func (pr *Prefixes) Channels(cols []lems.Column) ([]Channel, error) {
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	chs := make([]Channel, len(cols))
	for i, c := range cols {
		chs[i] = Channel{Name: c.Name, Base: c.Base, Group: pr.Classify(c.Base), Column: i}
	}
	return chs, nil
}

// ByGroup returns the subset of channels in the given group, in column order.
func ByGroup(chs []Channel, g Group) []Channel {
	var out []Channel
	for _, ch := range chs {
		if ch.Group == g {
			out = append(out, ch)
		}
	}
	return out
}
