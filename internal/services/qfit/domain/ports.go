// Package domain defines the q-distribution task configuration and the analyzer contract
package domain

import (
	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
)

// Configurable is the analyzer's configuration surface
type Configurable interface {
	SetBookOnlyBasicCCH(bool)
	SetUsePhiWeights(bool)
	SetWeightsList(*histo.List)
	SetHarmonic(int)
	SetQMin(float64)
	SetQMax(float64)
	SetQNbins(int)
	SetStoreQDistributionVsMult(bool)
	SetQDistributionVsMult(*histo.H2)
	SetMinMult(float64)
	SetMaxMult(float64)
	SetNbinsMult(int)
	SetDoFit(bool)
	SetExactNoRPs(int)
	SetMultiplicityIs(flowevent.MultiplicitySource)
}

// Accumulator books histograms and fills them per event
type Accumulator interface {
	Init()
	Make(*flowevent.Event)
	HistList() *histo.List
}

// Finisher ingests an accumulated list and computes the final results
type Finisher interface {
	GetOutputHistograms(*histo.List)
	Finish()
}

// Analyzer is the full contract the task drives
type Analyzer interface {
	Configurable
	Accumulator
	Finisher
}

// AnalyzerFactory returns a fresh, unconfigured analyzer
type AnalyzerFactory func() Analyzer
