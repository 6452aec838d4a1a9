package qdist

import (
	"math"

	"flowqfit/internal/core/flowevent"
)

// Config holds every tunable of the analyzer
type Config struct {
	Harmonic       int
	QMin, QMax     float64
	QNbins         int
	MultMin        float64
	MultMax        float64
	MultNbins      int
	UsePhiWeights  bool
	BookOnlyBasic  bool
	StoreQVsMult   bool
	DoFit          bool
	ExactNoRPs     int
	MultiplicityIs flowevent.MultiplicitySource
}

// DefaultConfig mirrors the task defaults
func DefaultConfig() Config {
	return Config{
		Harmonic:      2,
		QMin:          0,
		QMax:          100,
		QNbins:        10000,
		MultMin:       0,
		MultMax:       10000,
		MultNbins:     1000,
		BookOnlyBasic: true,
		DoFit:         true,
	}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (c Config) flagValues() [flagCount]float64 {
	return [flagCount]float64{
		float64(c.Harmonic), c.QMin, c.QMax, float64(c.QNbins),
		c.MultMin, c.MultMax, float64(c.MultNbins),
		b2f(c.UsePhiWeights), b2f(c.BookOnlyBasic), b2f(c.StoreQVsMult), b2f(c.DoFit),
		float64(c.ExactNoRPs), float64(c.MultiplicityIs),
	}
}

func configFromFlags(v [flagCount]float64) Config {
	i := func(x float64) int { return int(math.Round(x)) }
	return Config{
		Harmonic:       i(v[flagHarmonic-1]),
		QMin:           v[flagQMin-1],
		QMax:           v[flagQMax-1],
		QNbins:         i(v[flagQNbins-1]),
		MultMin:        v[flagMultMin-1],
		MultMax:        v[flagMultMax-1],
		MultNbins:      i(v[flagMultNbins-1]),
		UsePhiWeights:  v[flagUsePhiWeights-1] > 0.5,
		BookOnlyBasic:  v[flagBookOnlyBasic-1] > 0.5,
		StoreQVsMult:   v[flagStoreQVsMult-1] > 0.5,
		DoFit:          v[flagDoFit-1] > 0.5,
		ExactNoRPs:     i(v[flagExactNoRPs-1]),
		MultiplicityIs: flowevent.MultiplicitySource(i(v[flagMultiplicityIs-1])),
	}
}
