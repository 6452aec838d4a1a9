package histo

import (
	"fmt"
	"math"
)

// Profile keeps per-bin weighted sums of y so it reports a mean and spread per x bin.
// Merging profiles that all recorded the same value keeps that value as the mean.
type Profile struct {
	Name    string    `json:"name"`
	Title   string    `json:"title,omitempty"`
	X       Axis      `json:"x"`
	SumW    []float64 `json:"sumw"`
	SumWY   []float64 `json:"sumwy"`
	SumWY2  []float64 `json:"sumwy2"`
	Entries int64     `json:"entries"`
	Labels  []string  `json:"labels,omitempty"`
}

// NewProfile books an empty profile
func NewProfile(name, title string, n int, lo, hi float64) (*Profile, error) {
	ax, err := NewAxis(n, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Profile{
		Name:   name,
		Title:  title,
		X:      ax,
		SumW:   make([]float64, ax.cells()),
		SumWY:  make([]float64, ax.cells()),
		SumWY2: make([]float64, ax.cells()),
	}, nil
}

// GetName implements Object
func (p *Profile) GetName() string { return p.Name }

// Kind implements Object
func (p *Profile) Kind() Kind { return KindProfile }

// Fill records y at x with unit weight
func (p *Profile) Fill(x, y float64) { p.FillW(x, y, 1) }

// FillW records y at x with weight w
func (p *Profile) FillW(x, y, w float64) {
	b := p.X.Find(x)
	p.SumW[b] += w
	p.SumWY[b] += w * y
	p.SumWY2[b] += w * y * y
	p.Entries++
}

// FillBin records y into bin b directly
func (p *Profile) FillBin(b int, y float64) { p.FillW(p.X.Center(b), y, 1) }

// Mean returns the weighted mean of bin b, 0 when empty
func (p *Profile) Mean(b int) float64 {
	if p.SumW[b] == 0 {
		return 0
	}
	return p.SumWY[b] / p.SumW[b]
}

// Spread returns the weighted standard deviation of bin b
func (p *Profile) Spread(b int) float64 {
	if p.SumW[b] == 0 {
		return 0
	}
	m := p.Mean(b)
	return math.Sqrt(math.Max(p.SumWY2[b]/p.SumW[b]-m*m, 0))
}

// SetLabel names bin b (1..N)
func (p *Profile) SetLabel(b int, label string) {
	if len(p.Labels) != p.X.N {
		p.Labels = make([]string, p.X.N)
	}
	p.Labels[b-1] = label
}

// Clone returns a deep copy
func (p *Profile) Clone() Object {
	c := *p
	c.SumW = append([]float64(nil), p.SumW...)
	c.SumWY = append([]float64(nil), p.SumWY...)
	c.SumWY2 = append([]float64(nil), p.SumWY2...)
	c.Labels = append([]string(nil), p.Labels...)
	return &c
}

// Add sums another profile bin by bin
func (p *Profile) Add(o Object) error {
	other, ok := o.(*Profile)
	if !ok {
		return kindMismatch(p, o)
	}
	if !p.X.Equal(other.X) {
		return fmt.Errorf("%s: binning mismatch", p.Name)
	}
	for i := range p.SumW {
		p.SumW[i] += other.SumW[i]
		p.SumWY[i] += other.SumWY[i]
		p.SumWY2[i] += other.SumWY2[i]
	}
	p.Entries += other.Entries
	return nil
}

func (p *Profile) check() error {
	n := p.X.cells()
	if len(p.SumW) != n || len(p.SumWY) != n || len(p.SumWY2) != n {
		return fmt.Errorf("%s: %d bins, inconsistent arrays", p.Name, p.X.N)
	}
	return nil
}
