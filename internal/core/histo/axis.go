// Package histo holds the fixed-binning histograms the q-distribution analysis fills
// and the named list that carries them between processing units and the fit stage
package histo

import (
	"fmt"
	"math"
)

// Kind tags the concrete histogram type inside a List and on the wire
type Kind string

const (
	KindH1      Kind = "h1"
	KindH2      Kind = "h2"
	KindProfile Kind = "profile"
)

// Axis is a fixed-width binning over [Min, Max); bin 0 is underflow and bin N+1 overflow
type Axis struct {
	N   int     `json:"n"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewAxis validates and returns an axis
func NewAxis(n int, lo, hi float64) (Axis, error) {
	if n < 1 {
		return Axis{}, fmt.Errorf("axis needs at least one bin, got %d", n)
	}
	if !(hi > lo) {
		return Axis{}, fmt.Errorf("axis max %g must exceed min %g", hi, lo)
	}
	return Axis{N: n, Min: lo, Max: hi}, nil
}

// Width is the bin width
func (a Axis) Width() float64 { return (a.Max - a.Min) / float64(a.N) }

// Find returns the bin index for x including under/overflow; NaN lands in overflow
func (a Axis) Find(x float64) int {
	switch {
	case x < a.Min:
		return 0
	case math.IsNaN(x) || x >= a.Max:
		return a.N + 1
	}
	b := 1 + int((x-a.Min)/a.Width())
	if b > a.N { // rounding at the upper edge
		b = a.N
	}
	return b
}

// Center returns the center of bin b (1..N)
func (a Axis) Center(b int) float64 { return a.Min + (float64(b)-0.5)*a.Width() }

// LowEdge returns the lower edge of bin b
func (a Axis) LowEdge(b int) float64 { return a.Min + float64(b-1)*a.Width() }

// Equal reports identical binning
func (a Axis) Equal(o Axis) bool { return a.N == o.N && a.Min == o.Min && a.Max == o.Max }

func (a Axis) cells() int { return a.N + 2 }
