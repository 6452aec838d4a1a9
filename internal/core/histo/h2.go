package histo

import (
	"fmt"
	"math"
)

// H2 is a two-dimensional histogram; cells are stored x-major including under/overflow
type H2 struct {
	Name    string    `json:"name"`
	Title   string    `json:"title,omitempty"`
	X       Axis      `json:"x"`
	Y       Axis      `json:"y"`
	Sum     []float64 `json:"sum"`
	Sumw2   []float64 `json:"sumw2"`
	Entries int64     `json:"entries"`
}

// NewH2 books an empty 2D histogram
func NewH2(name, title string, nx int, xlo, xhi float64, ny int, ylo, yhi float64) (*H2, error) {
	ax, err := NewAxis(nx, xlo, xhi)
	if err != nil {
		return nil, fmt.Errorf("%s x: %w", name, err)
	}
	ay, err := NewAxis(ny, ylo, yhi)
	if err != nil {
		return nil, fmt.Errorf("%s y: %w", name, err)
	}
	n := ax.cells() * ay.cells()
	return &H2{Name: name, Title: title, X: ax, Y: ay, Sum: make([]float64, n), Sumw2: make([]float64, n)}, nil
}

// GetName implements Object
func (h *H2) GetName() string { return h.Name }

// Kind implements Object
func (h *H2) Kind() Kind { return KindH2 }

func (h *H2) cell(bx, by int) int { return bx*h.Y.cells() + by }

// Fill adds (x, y) with unit weight
func (h *H2) Fill(x, y float64) { h.FillW(x, y, 1) }

// FillW adds (x, y) with weight w
func (h *H2) FillW(x, y, w float64) {
	c := h.cell(h.X.Find(x), h.Y.Find(y))
	h.Sum[c] += w
	h.Sumw2[c] += w * w
	h.Entries++
}

// Content returns the content of cell (bx, by)
func (h *H2) Content(bx, by int) float64 { return h.Sum[h.cell(bx, by)] }

// Error returns sqrt(sumw2) of cell (bx, by)
func (h *H2) Error(bx, by int) float64 { return math.Sqrt(h.Sumw2[h.cell(bx, by)]) }

// SameBinning reports whether o has identical axes
func (h *H2) SameBinning(o *H2) bool { return o != nil && h.X.Equal(o.X) && h.Y.Equal(o.Y) }

// Clone returns a deep copy
func (h *H2) Clone() Object {
	c := *h
	c.Sum = append([]float64(nil), h.Sum...)
	c.Sumw2 = append([]float64(nil), h.Sumw2...)
	return &c
}

// Add sums another H2 cell by cell
func (h *H2) Add(o Object) error {
	other, ok := o.(*H2)
	if !ok {
		return kindMismatch(h, o)
	}
	if !h.SameBinning(other) {
		return fmt.Errorf("%s: binning mismatch", h.Name)
	}
	for i := range h.Sum {
		h.Sum[i] += other.Sum[i]
		h.Sumw2[i] += other.Sumw2[i]
	}
	h.Entries += other.Entries
	return nil
}

func (h *H2) check() error {
	n := h.X.cells() * h.Y.cells()
	if len(h.Sum) != n || len(h.Sumw2) != n {
		return fmt.Errorf("%s: %dx%d bins, arrays %d/%d", h.Name, h.X.N, h.Y.N, len(h.Sum), len(h.Sumw2))
	}
	return nil
}
