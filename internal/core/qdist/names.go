// Package qdist implements the q-distribution flow analyzer: it accumulates the
// distribution of the reduced flow vector q per event and, at the end, estimates
// the flow harmonic from its moments
package qdist

// Output list and histogram names; they are part of the artifact format
const (
	ListName     = "cobjFQD"
	HistQ        = "fqDistribution"
	HistSumW     = "fSumOfParticleWeights"
	HistMult     = "fMultiplicity"
	HistPhiRP    = "fPhiRP"
	HistPtRP     = "fPtRP"
	HistEtaRP    = "fEtaRP"
	HistQVsMult  = "fqDistributionVsMult"
	HistFlags    = "fFlags"
	HistResults  = "fResults"
	WeightsPhi   = "phi_weights"
	phiBins      = 360
	ptBins, ptHi = 100, 10.0
	etaBins      = 80
	etaLo, etaHi = -2.0, 2.0
)

// flag bins of the fFlags profile
const (
	flagHarmonic = iota + 1
	flagQMin
	flagQMax
	flagQNbins
	flagMultMin
	flagMultMax
	flagMultNbins
	flagUsePhiWeights
	flagBookOnlyBasic
	flagStoreQVsMult
	flagDoFit
	flagExactNoRPs
	flagMultiplicityIs
	flagCount = flagMultiplicityIs
)

var flagLabels = [flagCount]string{
	"harmonic", "q_min", "q_max", "q_nbins", "mult_min", "mult_max", "mult_nbins",
	"use_phi_weights", "book_only_basic", "store_q_vs_mult", "do_fit", "exact_no_rps", "multiplicity_is",
}

// result bins of the fResults histogram
const (
	resEntries = iota + 1
	resMeanMult
	resMeanQ2
	resV2
	resV
	resFitted
	resCount = resFitted
)

var resultLabels = [resCount]string{"entries", "mean_mult", "mean_q2", "v2", "v", "fitted"}
