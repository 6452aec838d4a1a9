// Package service adapts the q-distribution analyzer to the pipeline task lifecycle
package service

import (
	"context"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
	"flowqfit/internal/platform/logger"
	pdom "flowqfit/internal/services/pipeline/domain"
	"flowqfit/internal/services/qfit/domain"

	"github.com/rs/zerolog"
)

// Task drives one analyzer through setup, per-event steps and finalize.
// It holds no algorithmic state of its own.
type Task struct {
	name        string
	cfg         domain.Config
	numInputs   int
	newAnalyzer domain.AnalyzerFactory
	log         *zerolog.Logger

	slots    pdom.Slots
	analyzer domain.Analyzer
	final    domain.Analyzer
	weights  *histo.List
	out      *histo.List
}

// Option configures a Task
type Option func(*Task)

// WithLogger routes adapter diagnostics to l instead of the ctx logger
func WithLogger(l zerolog.Logger) Option {
	return func(t *Task) { t.log = &l }
}

// New builds a task; the number of inputs is fixed here from cfg.UseWeights
func New(name string, cfg domain.Config, newAnalyzer domain.AnalyzerFactory, opts ...Option) *Task {
	if name == "" {
		name = domain.TaskName
	}
	t := &Task{name: name, cfg: cfg, newAnalyzer: newAnalyzer, numInputs: 1}
	if cfg.UseWeights {
		t.numInputs = 2
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Name satisfies pipeline domain.Task
func (t *Task) Name() string { return t.name }

// NumInputs satisfies pipeline domain.Task
func (t *Task) NumInputs() int { return t.numInputs }

// Bind satisfies pipeline domain.Task
func (t *Task) Bind(s pdom.Slots) { t.slots = s }

// Analyzer returns the step analyzer built by CreateOutputs
func (t *Task) Analyzer() domain.Analyzer { return t.analyzer }

// Finalizer returns the analyzer built by Terminate, nil before it ran
func (t *Task) Finalizer() domain.Analyzer { return t.final }

// Output returns the local output reference
func (t *Task) Output() *histo.List { return t.out }

func (t *Task) logger(ctx context.Context) *zerolog.Logger {
	var l zerolog.Logger
	if t.log != nil {
		l = t.log.With().Str("task", t.name).Logger()
	} else {
		l = logger.C(ctx).With().Str("component", "qfit").Str("task", t.name).Logger()
	}
	return &l
}

// CreateOutputs builds the step analyzer, copies the configuration into it, books
// its histograms and posts the list to the output slot
func (t *Task) CreateOutputs(ctx context.Context) {
	a := t.newAnalyzer()
	t.analyzer = a

	a.SetBookOnlyBasicCCH(t.cfg.BookOnlyBasic)
	if t.cfg.UseWeights {
		if t.cfg.UsePhiWeights {
			a.SetUsePhiWeights(true)
		}
		if t.numInputs == 2 && t.slots.Weights != nil {
			t.weights = t.slots.Weights.Get()
			if t.weights != nil {
				a.SetWeightsList(t.weights)
			}
		}
	}
	a.SetHarmonic(t.cfg.Harmonic)
	a.SetQMin(t.cfg.QMin)
	a.SetQMax(t.cfg.QMax)
	a.SetQNbins(t.cfg.QNbins)
	a.SetStoreQDistributionVsMult(t.cfg.StoreQVsMult)
	a.SetQDistributionVsMult(t.cfg.QVsMult)
	a.SetMinMult(t.cfg.MultMin)
	a.SetMaxMult(t.cfg.MultMax)
	a.SetNbinsMult(t.cfg.MultNbins)
	a.SetDoFit(t.cfg.DoFit)
	a.SetExactNoRPs(t.cfg.ExactNoRPs)
	a.SetMultiplicityIs(t.cfg.MultiplicityIs)

	a.Init()

	if l := a.HistList(); l != nil {
		t.out = l
	} else {
		t.logger(ctx).Error().Msg("analyzer returned no histogram list after init")
	}
	t.post()
}

// Exec forwards the current event to the step analyzer and re-posts the output
func (t *Task) Exec(ctx context.Context) {
	if t.analyzer == nil {
		t.logger(ctx).Error().Msg("exec before create outputs; event dropped")
		return
	}
	ev := t.event()
	if ev == nil {
		t.logger(ctx).Warn().Msg("no event in input slot; skipping")
	} else {
		t.analyzer.Make(ev)
	}
	t.post()
}

// Terminate hands the merged output collection to a fresh analyzer and finishes it
func (t *Task) Terminate(ctx context.Context) {
	var merged *histo.List
	if t.slots.Output != nil {
		merged = t.slots.Output.Get()
	}
	fin := t.newAnalyzer()
	t.final = fin
	if merged == nil {
		t.logger(ctx).Warn().Msg("no histogram list in output slot; nothing to finish")
		return
	}
	fin.GetOutputHistograms(merged)
	fin.Finish()
	t.slots.Output.Post(merged)
}

func (t *Task) event() *flowevent.Event {
	if t.slots.Events == nil {
		return nil
	}
	return t.slots.Events.Get()
}

func (t *Task) post() {
	if t.slots.Output != nil {
		t.slots.Output.Post(t.out)
	}
}
