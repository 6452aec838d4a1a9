package histo

import (
	"fmt"
	"math"
)

// H1 is a one-dimensional histogram with per-bin sum of weights squared
type H1 struct {
	Name    string    `json:"name"`
	Title   string    `json:"title,omitempty"`
	X       Axis      `json:"x"`
	Sum     []float64 `json:"sum"`
	Sumw2   []float64 `json:"sumw2"`
	Entries int64     `json:"entries"`
	Labels  []string  `json:"labels,omitempty"`
}

// NewH1 books an empty histogram
func NewH1(name, title string, n int, lo, hi float64) (*H1, error) {
	ax, err := NewAxis(n, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &H1{
		Name:  name,
		Title: title,
		X:     ax,
		Sum:   make([]float64, ax.cells()),
		Sumw2: make([]float64, ax.cells()),
	}, nil
}

// GetName implements Object
func (h *H1) GetName() string { return h.Name }

// Kind implements Object
func (h *H1) Kind() Kind { return KindH1 }

// Fill adds x with unit weight
func (h *H1) Fill(x float64) { h.FillW(x, 1) }

// FillW adds x with weight w
func (h *H1) FillW(x, w float64) {
	b := h.X.Find(x)
	h.Sum[b] += w
	h.Sumw2[b] += w * w
	h.Entries++
}

// Content returns the bin content
func (h *H1) Content(b int) float64 { return h.Sum[b] }

// Error returns sqrt(sumw2) of the bin
func (h *H1) Error(b int) float64 { return math.Sqrt(h.Sumw2[b]) }

// SetContent overwrites a bin content and its error
func (h *H1) SetContent(b int, v, err float64) {
	h.Sum[b] = v
	h.Sumw2[b] = err * err
}

// SetLabel names bin b (1..N)
func (h *H1) SetLabel(b int, label string) {
	if len(h.Labels) != h.X.N {
		h.Labels = make([]string, h.X.N)
	}
	h.Labels[b-1] = label
}

// Integral sums the in-range bins
func (h *H1) Integral() float64 {
	s := 0.0
	for b := 1; b <= h.X.N; b++ {
		s += h.Sum[b]
	}
	return s
}

// Moment returns the weighted in-range mean of f(center)
func (h *H1) Moment(f func(x float64) float64) float64 {
	sw, sx := 0.0, 0.0
	for b := 1; b <= h.X.N; b++ {
		sw += h.Sum[b]
		sx += h.Sum[b] * f(h.X.Center(b))
	}
	if sw == 0 {
		return 0
	}
	return sx / sw
}

// Mean is the weighted in-range mean of bin centers
func (h *H1) Mean() float64 { return h.Moment(func(x float64) float64 { return x }) }

// Reset zeroes all bins
func (h *H1) Reset() {
	clear(h.Sum)
	clear(h.Sumw2)
	h.Entries = 0
}

// Clone returns a deep copy
func (h *H1) Clone() Object {
	c := *h
	c.Sum = append([]float64(nil), h.Sum...)
	c.Sumw2 = append([]float64(nil), h.Sumw2...)
	c.Labels = append([]string(nil), h.Labels...)
	return &c
}

// Add sums another H1 bin by bin
func (h *H1) Add(o Object) error {
	other, ok := o.(*H1)
	if !ok {
		return kindMismatch(h, o)
	}
	if !h.X.Equal(other.X) {
		return fmt.Errorf("%s: binning mismatch %+v vs %+v", h.Name, h.X, other.X)
	}
	for i := range h.Sum {
		h.Sum[i] += other.Sum[i]
		h.Sumw2[i] += other.Sumw2[i]
	}
	h.Entries += other.Entries
	return nil
}

func (h *H1) check() error {
	if len(h.Sum) != h.X.cells() || len(h.Sumw2) != h.X.cells() {
		return fmt.Errorf("%s: %d bins, arrays %d/%d", h.Name, h.X.N, len(h.Sum), len(h.Sumw2))
	}
	return nil
}
