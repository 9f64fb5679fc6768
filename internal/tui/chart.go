package tui

import (
	"fmt"
	"strings"
)

type chartPoint struct {
	Label string
	Value float64
}

// renderBars draws a horizontal bar per point, scaled to the largest
// value. Labels are padded to the widest label in the set.
func renderBars(points []chartPoint, width int, currency string) string {
	if len(points) == 0 {
		return hintStyle.Render("(no data)")
	}
	maxV := 0.0
	labelW := 0
	for _, p := range points {
		if p.Value > maxV {
			maxV = p.Value
		}
		if len(p.Label) > labelW {
			labelW = len(p.Label)
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	barW := width - labelW - 14
	if barW < 8 {
		barW = 8
	}
	var lines []string
	for _, p := range points {
		w := int((p.Value / maxV) * float64(barW))
		if w < 1 {
			w = 1
		}
		bar := barFill.Render(strings.Repeat("#", w))
		lines = append(lines, fmt.Sprintf("%-*s %s %s%.0f", labelW, p.Label, bar, currency, p.Value))
	}
	return strings.Join(lines, "\n")
}

// renderProgress draws a budget progress bar. ratio is clamped to
// [0, 1]; over reports whether the underlying value exceeded the
// ceiling (the fill turns red).
func renderProgress(ratio float64, over bool, width int) string {
	if width < 10 {
		width = 10
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	fill := barFill
	if over {
		fill = barOver
	}
	return fill.Render(strings.Repeat("█", filled)) +
		barTrack.Render(strings.Repeat("░", width-filled))
}
