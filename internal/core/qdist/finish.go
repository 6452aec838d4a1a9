package qdist

import (
	"math"

	"flowqfit/internal/core/histo"
)

// Results is the moment estimate of the flow harmonic
type Results struct {
	Entries  float64 `json:"entries"`
	MeanMult float64 `json:"mean_mult"`
	MeanQ2   float64 `json:"mean_q2"`
	V2       float64 `json:"v2"`     // v squared, may be negative
	V        float64 `json:"v"`      // sqrt(max(V2, 0))
	VErr     float64 `json:"v_err"`  // statistical error on V
	Fitted   bool    `json:"fitted"` // false when DoFit was off or statistics were insufficient
}

// Finish computes the results from the bound histograms and stores them in fResults
func (a *Analyzer) Finish() {
	if a.hq == nil || a.hSumW == nil {
		return
	}
	r := estimate(a.hq, a.hSumW, a.cfg.DoFit)
	a.res, a.hasRs = r, true

	if a.results == nil {
		h, err := newResultsHist()
		if err != nil {
			return
		}
		if err := a.list.Add(h); err != nil {
			return
		}
		a.results = h
	}
	a.results.Reset()
	a.results.SetContent(resEntries, r.Entries, 0)
	a.results.SetContent(resMeanMult, r.MeanMult, 0)
	a.results.SetContent(resMeanQ2, r.MeanQ2, 0)
	a.results.SetContent(resV2, r.V2, 0)
	a.results.SetContent(resV, r.V, r.VErr)
	a.results.SetContent(resFitted, b2f(r.Fitted), 0)
	a.results.Entries = 1
}

// Results returns what the last Finish computed
func (a *Analyzer) Results() (Results, bool) { return a.res, a.hasRs }

func estimate(hq, hSumW *histo.H1, doFit bool) Results {
	r := Results{
		Entries:  hq.Integral(),
		MeanMult: hSumW.Mean(),
		MeanQ2:   hq.Moment(func(x float64) float64 { return x * x }),
	}
	if !doFit || r.Entries < 2 || r.MeanMult <= 1 {
		return r
	}
	den := r.MeanMult - 1
	r.V2 = (r.MeanQ2 - 1) / den
	r.V = math.Sqrt(math.Max(r.V2, 0))

	q4 := hq.Moment(func(x float64) float64 { return x * x * x * x })
	errV2 := math.Sqrt(math.Max(q4-r.MeanQ2*r.MeanQ2, 0)/r.Entries) / den
	if r.V > 0 {
		r.VErr = errV2 / (2 * r.V)
	}
	r.Fitted = true
	return r
}

// ResultsFrom reads the results a finished analyzer left in l
func ResultsFrom(l *histo.List) (Results, bool) {
	h := l.H1(HistResults)
	if h == nil || h.X.N != resCount || h.Entries == 0 {
		return Results{}, false
	}
	return Results{
		Entries:  h.Content(resEntries),
		MeanMult: h.Content(resMeanMult),
		MeanQ2:   h.Content(resMeanQ2),
		V2:       h.Content(resV2),
		V:        h.Content(resV),
		VErr:     h.Error(resV),
		Fitted:   h.Content(resFitted) > 0.5,
	}, true
}

// ConfigFrom recovers the configuration recorded in l
func ConfigFrom(l *histo.List) (Config, bool) {
	p := l.Profile(HistFlags)
	if p == nil || p.X.N != flagCount {
		return Config{}, false
	}
	var v [flagCount]float64
	for i := range v {
		v[i] = p.Mean(i + 1)
	}
	return configFromFlags(v), true
}
