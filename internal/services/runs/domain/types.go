package domain

import (
	"flowqfit/internal/adapters/ingest/flowevents"
	"flowqfit/internal/core/histo"
	pdom "flowqfit/internal/services/pipeline/domain"
	rdom "flowqfit/internal/services/results/domain"
)

// Overrides adjust the task configuration for one run; nil fields keep the configured value
type Overrides struct {
	Harmonic       *int     `json:"harmonic,omitempty"`
	QMin           *float64 `json:"q_min,omitempty"`
	QMax           *float64 `json:"q_max,omitempty"`
	QNbins         *int     `json:"q_nbins,omitempty"`
	MultMin        *float64 `json:"mult_min,omitempty"`
	MultMax        *float64 `json:"mult_max,omitempty"`
	MultNbins      *int     `json:"mult_nbins,omitempty"`
	UsePhiWeights  *bool    `json:"use_phi_weights,omitempty"`
	BookOnlyBasic  *bool    `json:"book_only_basic,omitempty"`
	StoreQVsMult   *bool    `json:"store_q_vs_mult,omitempty"`
	DoFit          *bool    `json:"do_fit,omitempty"`
	ExactNoRPs     *int     `json:"exact_no_rps,omitempty"`
	MultiplicityIs *string  `json:"multiplicity_is,omitempty"`
}

// Request describes one accumulate-and-finish run
type Request struct {
	Name        string     `json:"name" validate:"required,max=128"`
	EventsPath  string     `json:"events_path" validate:"required"`
	WeightsPath string     `json:"weights_path,omitempty"`
	Units       int        `json:"units,omitempty" validate:"omitempty,min=1,max=256"`
	Persist     bool       `json:"persist,omitempty"`
	Overrides   *Overrides `json:"overrides,omitempty"`
}

// FinalizeRequest describes a terminate-only run over a stored artifact
type FinalizeRequest struct {
	Name         string
	ArtifactPath string
	Overrides    *Overrides
	Persist      bool
}

// Outcome is what a run produced
type Outcome struct {
	Run      rdom.Run         `json:"run"`
	Input    flowevents.Stats `json:"input"`
	Pipeline pdom.RunResult   `json:"pipeline"`
	Saved    bool             `json:"saved"`
	Merged   *histo.List      `json:"-"`
}
