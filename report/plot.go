// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wormsim/eternalpain/motor"
	"github.com/wormsim/eternalpain/trace"
)

// line colors per group: forward green, reversal red, shaded by channel
// index within the group to keep channels distinguishable.
func lineColor(g motor.Group, i int) color.RGBA {
	sh := uint8(60 * (i % 4))
	if g == motor.Forward {
		return color.RGBA{R: sh, G: 160, B: sh, A: 255}
	}
	return color.RGBA{R: 200, G: sh, B: sh, A: 255}
}

// Plot renders all classified channels' activity over time with a dashed
// vertical marker at the injection time, and writes the image to path
// (format from the extension: .png, .svg, .pdf, ...).  The image is
// written to a temporary file in the target directory and renamed into
// place only on success, so a failed render never leaves a truncated
// artifact behind.
func Plot(path string, tr *trace.Trace, chans []motor.Channel, inject float64) error {
	p := plot.New()
	p.Title.Text = "Motor Neuron Activity Before and After Stimulus Injection"
	p.X.Label.Text = fmt.Sprintf("Time (%v)", tr.Unit)
	p.Y.Label.Text = "Activity"
	p.Legend.Top = true

	ymin, ymax := 0.0, 0.0
	first := true
	cnt := map[motor.Group]int{}
	for _, ch := range chans {
		if ch.Group == motor.Unclassified {
			continue
		}
		xys := make(plotter.XYs, tr.Rows())
		for ri := 0; ri < tr.Rows(); ri++ {
			v := tr.Value(ch.Name, ri)
			xys[ri].X = tr.Time(ri)
			xys[ri].Y = v
			if first || v < ymin {
				ymin = v
			}
			if first || v > ymax {
				ymax = v
			}
			first = false
		}
		ln, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("report: plotting %s: %w", ch.Name, err)
		}
		ln.Color = lineColor(ch.Group, cnt[ch.Group])
		cnt[ch.Group]++
		p.Add(ln)
		p.Legend.Add(ch.Name, ln)
	}
	if first { // no classified channels: keep a visible span for the marker
		ymin, ymax = -1, 1
	}

	mk, err := plotter.NewLine(plotter.XYs{{X: inject, Y: ymin}, {X: inject, Y: ymax}})
	if err != nil {
		return fmt.Errorf("report: injection marker: %w", err)
	}
	mk.Color = color.RGBA{R: 255, A: 255}
	mk.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	mk.Width = vg.Points(1.5)
	p.Add(mk)
	p.Legend.Add(fmt.Sprintf("injection (%g %v)", inject, tr.Unit), mk)

	return saveAtomic(p, path)
}

// saveAtomic renders the plot into a temp file next to path and renames it
// into place, removing the temp file on any failure.
func saveAtomic(p *plot.Plot, path string) (err error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return fmt.Errorf("report: plot path %q has no format extension", path)
	}
	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, ext[1:])
	if err != nil {
		return fmt.Errorf("report: rendering plot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = wt.WriteTo(tmp); err != nil {
		return fmt.Errorf("report: writing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("report: closing %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
