// Package service runs the q-distribution pipeline end to end: read events, accumulate,
// finish and optionally persist
package service

import (
	"context"
	"encoding/json"
	"time"

	"flowqfit/internal/adapters/ingest/flowevents"
	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
	"flowqfit/internal/core/qdist"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/platform/logger"
	"flowqfit/internal/platform/net/http/bind"
	pdom "flowqfit/internal/services/pipeline/domain"
	qfitmod "flowqfit/internal/services/qfit/module"
	rdom "flowqfit/internal/services/results/domain"
	dom "flowqfit/internal/services/runs/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunnerFor returns a runner with n processing units; n <= 0 means the configured default
type RunnerFor func(n int) pdom.Runner

// Config for the runs service
type Config struct {
	Buffer int
}

// Service implements domain.RunPort
type Service struct {
	build  qfitmod.Builder
	runner RunnerFor
	writer rdom.WriterPort // nil when persistence is disabled
	cfg    Config
	now    func() time.Time
}

// New constructs the runs service
func New(build qfitmod.Builder, runner RunnerFor, writer rdom.WriterPort, cfg Config) *Service {
	if cfg.Buffer < 0 {
		cfg.Buffer = 0
	}
	return &Service{build: build, runner: runner, writer: writer, cfg: cfg, now: time.Now}
}

// Execute streams the events file through the pipeline and summarizes the finished collection
func (s *Service) Execute(ctx context.Context, req dom.Request) (dom.Outcome, error) {
	if err := bind.Validate(req, perr.ErrorCodeValidation); err != nil {
		return dom.Outcome{}, err
	}
	if req.Persist && s.writer == nil {
		return dom.Outcome{}, perr.New(perr.ErrorCodeUnavailable, "runs: persistence disabled")
	}
	factory, opts, err := s.build(overrides(req.Overrides, req.WeightsPath != "")...)
	if err != nil {
		return dom.Outcome{}, err
	}

	var weights *histo.List
	if req.WeightsPath != "" {
		if weights, err = flowevents.LoadWeights(req.WeightsPath); err != nil {
			return dom.Outcome{}, err
		}
	}
	rd, err := flowevents.Open(req.EventsPath)
	if err != nil {
		return dom.Outcome{}, err
	}
	defer rd.Close()

	id := uuid.New()
	ctx = logger.WithRun(ctx, id.String())
	started := s.now()

	events := make(chan *flowevent.Event, s.cfg.Buffer)
	var res pdom.RunResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		return rd.Stream(gctx, events)
	})
	g.Go(func() error {
		var err error
		res, err = s.runner(req.Units).Run(gctx, events, weights, factory)
		return err
	})
	if err := g.Wait(); err != nil {
		return dom.Outcome{}, err
	}

	out := dom.Outcome{Input: rd.Stats(), Pipeline: res, Merged: res.Merged}
	out.Run = s.record(id, req.Name, started, opts, res.Merged)
	out.Run.Elapsed = res.Elapsed
	out.Run.Units = len(res.Units)
	out.Run.Events = res.Events
	out.Run.NilEvents = res.Nil

	logger.C(ctx).Info().
		Str("name", req.Name).
		Int("skipped_lines", out.Input.Skipped).
		Float64("v", out.Run.Summary.V).
		Bool("fitted", out.Run.Summary.Fitted).
		Msg("run finished")

	if req.Persist {
		if err := s.writer.Save(ctx, &out.Run, out.Merged); err != nil {
			return out, err
		}
		out.Saved = true
	}
	return out, nil
}

// Finalize runs only the terminate stage on a stored accumulation artifact
func (s *Service) Finalize(ctx context.Context, req dom.FinalizeRequest) (dom.Outcome, error) {
	if req.ArtifactPath == "" {
		return dom.Outcome{}, perr.InvalidArgf("runs: artifact path is required")
	}
	if req.Persist && s.writer == nil {
		return dom.Outcome{}, perr.New(perr.ErrorCodeUnavailable, "runs: persistence disabled")
	}
	factory, opts, err := s.build(overrides(req.Overrides, false)...)
	if err != nil {
		return dom.Outcome{}, err
	}
	acc, err := histo.ReadFile(req.ArtifactPath)
	if err != nil {
		return dom.Outcome{}, perr.Wrapf(err, perr.ErrorCodeInput, "read artifact %s", req.ArtifactPath)
	}

	id := uuid.New()
	ctx = logger.WithRun(ctx, id.String())
	started := s.now()
	merged, err := s.runner(0).Finalize(ctx, acc, factory)
	if err != nil {
		return dom.Outcome{}, err
	}

	out := dom.Outcome{Merged: merged, Pipeline: pdom.RunResult{Merged: merged, Elapsed: s.now().Sub(started)}}
	out.Run = s.record(id, req.Name, started, opts, merged)
	out.Run.Elapsed = out.Pipeline.Elapsed
	if req.Persist {
		if err := s.writer.Save(ctx, &out.Run, merged); err != nil {
			return out, err
		}
		out.Saved = true
	}
	return out, nil
}

func (s *Service) record(id uuid.UUID, name string, started time.Time, opts qfitmod.Options, merged *histo.List) rdom.Run {
	run := rdom.Run{ID: id, Name: name, StartedAt: started}
	if b, err := json.Marshal(opts); err == nil {
		run.Config = b
	}
	if merged != nil {
		if res, ok := qdist.ResultsFrom(merged); ok {
			run.Summary = res
		}
	}
	return run
}

// overrides turns the request overrides into qfit option overrides
func overrides(o *dom.Overrides, useWeights bool) []qfitmod.Override {
	var out []qfitmod.Override
	if useWeights {
		out = append(out, func(opts *qfitmod.Options) { opts.UseWeights = true })
	}
	if o == nil {
		return out
	}
	return append(out, func(opts *qfitmod.Options) {
		set(&opts.Harmonic, o.Harmonic)
		set(&opts.QMin, o.QMin)
		set(&opts.QMax, o.QMax)
		set(&opts.QNbins, o.QNbins)
		set(&opts.MultMin, o.MultMin)
		set(&opts.MultMax, o.MultMax)
		set(&opts.MultNbins, o.MultNbins)
		set(&opts.UsePhiWeights, o.UsePhiWeights)
		set(&opts.BookOnlyBasic, o.BookOnlyBasic)
		set(&opts.StoreQVsMult, o.StoreQVsMult)
		set(&opts.DoFit, o.DoFit)
		set(&opts.ExactNoRPs, o.ExactNoRPs)
		set(&opts.MultiplicityIs, o.MultiplicityIs)
	})
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
