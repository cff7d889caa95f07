// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders the analysis outcome: a textual per-group summary
// and a time-series plot of all classified channels with the injection
// point marked.  Pure presentation -- nothing here alters a computed
// statistic, and the summary is a deterministic function of the results.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/wormsim/eternalpain/stats"
)

const rule = "======================================================================"

// Summary writes the per-group statistics, diagnostics, and behavioral
// interpretation to w.
func Summary(w io.Writer, res *stats.Results) error {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("MOTOR NEURON ACTIVITY ANALYSIS\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Stimulus injection time: %g %v\n", res.Inject, res.Unit)

	writeGroup(&b, "FORWARD MOTOR NEURONS", &res.Forward, &res.ForwardCmp)
	writeGroup(&b, "BACKWARD/REVERSAL MOTOR NEURONS", &res.Reversal, &res.ReversalCmp)

	if n := len(res.Unclassified); n > 0 {
		names := make([]string, n)
		for i, ch := range res.Unclassified {
			names[i] = ch.Name
		}
		fmt.Fprintf(&b, "\nWARNING: %d channel(s) matched no motor prefix set: %s\n",
			n, strings.Join(names, ", "))
		b.WriteString("  (schema or classification drift -- these are excluded from the comparison)\n")
	}

	b.WriteString("\n--- INTERPRETATION ---\n")
	switch res.Verdict() {
	case stats.AggressiveAvoidance:
		b.WriteString("AGGRESSIVE MOVEMENT DETECTED: reversal activity increased after the stimulus\n")
		b.WriteString("  The nematode is showing avoidance behavior (reversals) in response to the stimulus\n")
	case stats.ForwardInhibition:
		b.WriteString("MOVEMENT INHIBITION: forward activity decreased after the stimulus\n")
		b.WriteString("  The nematode is stopping forward locomotion in response to the stimulus\n")
	case stats.Inconclusive:
		b.WriteString("Movement pattern needs further analysis\n")
	default:
		b.WriteString("No comparison possible: one or both windows contain no data\n")
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeGroup(b *strings.Builder, title string, gs *stats.GroupStat, cmp *stats.Comparison) {
	fmt.Fprintf(b, "\n--- %s ---\n", title)
	fmt.Fprintf(b, "Channels: %d\n", gs.Channels)
	fmt.Fprintf(b, "Before:   %s\n", meanStr(&gs.Before))
	fmt.Fprintf(b, "After:    %s\n", meanStr(&gs.After))
	if !cmp.Defined {
		b.WriteString("Change:   undefined (no comparison)\n")
		return
	}
	fmt.Fprintf(b, "Change:   %+.4f (%+.2f%%) -> %v\n", cmp.Delta, cmp.Pct, cmp.Direction)
}

func meanStr(m *stats.Mean) string {
	if !m.Defined {
		return "undefined (no data in window)"
	}
	return fmt.Sprintf("Mean = %.4f, Std = %.4f, N = %d", m.Value, m.Std, m.N)
}
