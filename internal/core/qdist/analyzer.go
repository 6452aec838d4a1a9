package qdist

import (
	"fmt"
	"math"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
)

// Analyzer accumulates the q-distribution over events. Configure it through the
// setters, call Init once, Make per event, then either read HistList or hand a
// merged list to a fresh Analyzer via GetOutputHistograms and call Finish.
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	cfg     Config
	weights *histo.List
	qvmIn   *histo.H2
	err     error

	list    *histo.List
	hq      *histo.H1
	hSumW   *histo.H1
	hMult   *histo.H1
	hPhi    *histo.H1
	hPt     *histo.H1
	hEta    *histo.H1
	hqm     *histo.H2
	flags   *histo.Profile
	results *histo.H1
	phiW    *histo.H1

	res   Results
	hasRs bool
}

// New returns an analyzer with DefaultConfig
func New() *Analyzer { return &Analyzer{cfg: DefaultConfig()} }

// Setters take effect at the next Init.

func (a *Analyzer) SetBookOnlyBasicCCH(v bool)                       { a.cfg.BookOnlyBasic = v }
func (a *Analyzer) SetUsePhiWeights(v bool)                          { a.cfg.UsePhiWeights = v }
func (a *Analyzer) SetWeightsList(l *histo.List)                     { a.weights = l }
func (a *Analyzer) SetHarmonic(n int)                                { a.cfg.Harmonic = n }
func (a *Analyzer) SetQMin(v float64)                                { a.cfg.QMin = v }
func (a *Analyzer) SetQMax(v float64)                                { a.cfg.QMax = v }
func (a *Analyzer) SetQNbins(n int)                                  { a.cfg.QNbins = n }
func (a *Analyzer) SetStoreQDistributionVsMult(v bool)               { a.cfg.StoreQVsMult = v }
func (a *Analyzer) SetQDistributionVsMult(h *histo.H2)               { a.qvmIn = h }
func (a *Analyzer) SetMinMult(v float64)                             { a.cfg.MultMin = v }
func (a *Analyzer) SetMaxMult(v float64)                             { a.cfg.MultMax = v }
func (a *Analyzer) SetNbinsMult(n int)                               { a.cfg.MultNbins = n }
func (a *Analyzer) SetDoFit(v bool)                                  { a.cfg.DoFit = v }
func (a *Analyzer) SetExactNoRPs(n int)                              { a.cfg.ExactNoRPs = n }
func (a *Analyzer) SetMultiplicityIs(s flowevent.MultiplicitySource) { a.cfg.MultiplicityIs = s }

// Config returns the current configuration
func (a *Analyzer) Config() Config { return a.cfg }

// Err reports why the last Init or GetOutputHistograms left the analyzer without a list
func (a *Analyzer) Err() error { return a.err }

// Init books the output histograms. On invalid binning HistList stays nil and Err is set.
func (a *Analyzer) Init() {
	a.err = nil
	l, err := a.book()
	if err != nil {
		a.err = err
		a.list = nil
		return
	}
	a.list = l
	a.phiW = nil
	if a.cfg.UsePhiWeights {
		a.phiW = a.weights.H1(WeightsPhi)
	}
	vals := a.cfg.flagValues()
	for i, v := range vals {
		a.flags.FillBin(i+1, v)
	}
}

func (a *Analyzer) book() (*histo.List, error) {
	c := a.cfg
	if c.Harmonic < 1 {
		return nil, fmt.Errorf("harmonic must be positive, got %d", c.Harmonic)
	}
	l := histo.NewList(ListName)
	h1 := func(name, title string, n int, lo, hi float64) (*histo.H1, error) {
		h, err := histo.NewH1(name, title, n, lo, hi)
		if err != nil {
			return nil, err
		}
		return h, l.Add(h)
	}

	var err error
	if a.hq, err = h1(HistQ, "q-distribution", c.QNbins, c.QMin, c.QMax); err != nil {
		return nil, err
	}
	if a.hSumW, err = h1(HistSumW, "sum of particle weights", c.MultNbins, c.MultMin, c.MultMax); err != nil {
		return nil, err
	}
	if a.hMult, err = h1(HistMult, "multiplicity", c.MultNbins, c.MultMin, c.MultMax); err != nil {
		return nil, err
	}
	a.hPhi, a.hPt, a.hEta = nil, nil, nil
	if !c.BookOnlyBasic {
		if a.hPhi, err = h1(HistPhiRP, "phi of RPs", phiBins, 0, 2*math.Pi); err != nil {
			return nil, err
		}
		if a.hPt, err = h1(HistPtRP, "pt of RPs", ptBins, 0, ptHi); err != nil {
			return nil, err
		}
		if a.hEta, err = h1(HistEtaRP, "eta of RPs", etaBins, etaLo, etaHi); err != nil {
			return nil, err
		}
	}

	a.hqm = nil
	if c.StoreQVsMult {
		h, err := histo.NewH2(HistQVsMult, "q vs multiplicity", c.QNbins, c.QMin, c.QMax, c.MultNbins, c.MultMin, c.MultMax)
		if err != nil {
			return nil, err
		}
		// a pre-booked handle is taken over when its binning matches
		if h.SameBinning(a.qvmIn) {
			h = a.qvmIn.Clone().(*histo.H2)
			h.Name = HistQVsMult
		}
		if err := l.Add(h); err != nil {
			return nil, err
		}
		a.hqm = h
	}

	if a.flags, err = histo.NewProfile(HistFlags, "configuration", flagCount, 0, flagCount); err != nil {
		return nil, err
	}
	for i, s := range flagLabels {
		a.flags.SetLabel(i+1, s)
	}
	if err := l.Add(a.flags); err != nil {
		return nil, err
	}
	if a.results, err = newResultsHist(); err != nil {
		return nil, err
	}
	return l, l.Add(a.results)
}

func newResultsHist() (*histo.H1, error) {
	h, err := histo.NewH1(HistResults, "moment estimate", resCount, 0, resCount)
	if err != nil {
		return nil, err
	}
	for i, s := range resultLabels {
		h.SetLabel(i+1, s)
	}
	return h, nil
}

// HistList returns the booked list, nil before a successful Init
func (a *Analyzer) HistList() *histo.List { return a.list }

// Make accumulates one event
func (a *Analyzer) Make(ev *flowevent.Event) {
	if ev == nil || a.list == nil {
		return
	}
	n := ev.NumberOfRPs()
	if n == 0 {
		return
	}
	if a.cfg.ExactNoRPs > 0 && n != a.cfg.ExactNoRPs {
		return
	}

	harm := float64(a.cfg.Harmonic)
	var qx, qy, sumW, sumW2 float64
	for _, t := range ev.Tracks {
		if !t.RP {
			continue
		}
		w := t.W()
		if a.phiW != nil {
			w *= a.phiW.Content(a.phiW.X.Find(t.Phi))
		}
		qx += w * math.Cos(harm*t.Phi)
		qy += w * math.Sin(harm*t.Phi)
		sumW += w
		sumW2 += w * w
		if a.hPhi != nil {
			a.hPhi.FillW(t.Phi, w)
			a.hPt.FillW(t.Pt, w)
			a.hEta.FillW(t.Eta, w)
		}
	}
	if sumW2 <= 0 {
		return
	}
	q := math.Hypot(qx, qy) / math.Sqrt(sumW2)
	mult := ev.Multiplicity(a.cfg.MultiplicityIs, sumW)
	if !finite(q) || !finite(mult) || !finite(sumW) {
		return
	}

	a.hq.Fill(q)
	a.hSumW.Fill(sumW)
	a.hMult.Fill(mult)
	if a.hqm != nil {
		a.hqm.Fill(q, mult)
	}
}

// GetOutputHistograms binds the analyzer to an existing, usually merged, list and
// recovers the configuration recorded in it
func (a *Analyzer) GetOutputHistograms(l *histo.List) {
	a.err = nil
	if l == nil {
		a.err = fmt.Errorf("nil output list")
		return
	}
	a.list = l
	a.hq = l.H1(HistQ)
	a.hSumW = l.H1(HistSumW)
	a.hMult = l.H1(HistMult)
	a.hPhi, a.hPt, a.hEta = l.H1(HistPhiRP), l.H1(HistPtRP), l.H1(HistEtaRP)
	a.hqm = l.H2(HistQVsMult)
	a.flags = l.Profile(HistFlags)
	a.results = l.H1(HistResults)
	if cfg, ok := ConfigFrom(l); ok {
		a.cfg = cfg
	}
	if a.hq == nil || a.hSumW == nil {
		a.err = fmt.Errorf("list %s lacks %s or %s", l.Name, HistQ, HistSumW)
	}
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
