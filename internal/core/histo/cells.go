package histo

import "math"

// Cell is one non-empty bin of a histogram; Y is 0 for one-dimensional kinds
type Cell struct {
	X       int     `json:"x"`
	Y       int     `json:"y,omitempty"`
	Center  float64 `json:"center"`
	Content float64 `json:"content"`
	Error   float64 `json:"error"`
}

// Cells lists the non-empty bins of o, under and overflow included, in x-major order.
// Profiles report the bin mean as content and the spread as error.
func Cells(o Object) []Cell {
	var out []Cell
	switch h := o.(type) {
	case *H1:
		for b := range h.Sum {
			if h.Sum[b] == 0 && h.Sumw2[b] == 0 {
				continue
			}
			out = append(out, Cell{X: b, Center: h.X.Center(b), Content: h.Sum[b], Error: math.Sqrt(h.Sumw2[b])})
		}
	case *H2:
		for bx := 0; bx < h.X.cells(); bx++ {
			for by := 0; by < h.Y.cells(); by++ {
				c := h.cell(bx, by)
				if h.Sum[c] == 0 && h.Sumw2[c] == 0 {
					continue
				}
				out = append(out, Cell{X: bx, Y: by, Center: h.X.Center(bx), Content: h.Sum[c], Error: math.Sqrt(h.Sumw2[c])})
			}
		}
	case *Profile:
		for b := range h.SumW {
			if h.SumW[b] == 0 {
				continue
			}
			out = append(out, Cell{X: b, Center: h.X.Center(b), Content: h.Mean(b), Error: h.Spread(b)})
		}
	}
	return out
}
