// Package chart draws small text charts for sinks that cannot render images.
package chart

import (
	"math"
	"strings"
)

var ticks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws one tick per value scaled between the series min and max.
// Missing (NaN) values render as a space.
func Sparkline(values []float64) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		switch {
		case math.IsNaN(v):
			b.WriteRune(' ')
		case hi == lo:
			b.WriteRune(ticks[len(ticks)/2])
		default:
			i := int((v - lo) / (hi - lo) * float64(len(ticks)-1))
			b.WriteRune(ticks[i])
		}
	}
	return b.String()
}

// Bar draws a horizontal bar of |value| relative to max, at most width cells.
// Non-zero values always get at least one cell.
func Bar(value, max float64, width int) string {
	if width <= 0 || max <= 0 || math.IsNaN(value) {
		return ""
	}
	n := int(math.Round(math.Abs(value) / max * float64(width)))
	if n > width {
		n = width
	}
	if n == 0 && value != 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// MaxAbs returns the largest absolute non-NaN value, or 0.
func MaxAbs(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			m = math.Max(m, math.Abs(v))
		}
	}
	return m
}

// Mean averages the non-NaN values. ok is false when there are none.
func Mean(values []float64) (mean float64, ok bool) {
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		mean += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return mean / float64(n), true
}
