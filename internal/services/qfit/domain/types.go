package domain

import (
	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
)

// TaskName is the default task and output name
const TaskName = "FittingQDistribution"

// Config is the task configuration; it is fixed once the task is built
type Config struct {
	Harmonic       int
	QMin, QMax     float64
	QNbins         int
	MultMin        float64
	MultMax        float64
	MultNbins      int
	UseWeights     bool
	UsePhiWeights  bool
	ExactNoRPs     int
	MultiplicityIs flowevent.MultiplicitySource
	BookOnlyBasic  bool
	StoreQVsMult   bool
	QVsMult        *histo.H2 // optional pre-booked handle
	DoFit          bool
}
