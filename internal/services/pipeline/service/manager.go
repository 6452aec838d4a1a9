// Package service runs tasks over an event stream on concurrent processing units
package service

import (
	"context"
	"fmt"
	"time"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/platform/logger"
	"flowqfit/internal/services/pipeline/domain"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Config for the manager
type Config struct {
	Units  int
	Buffer int
}

// Manager implements domain.Runner
type Manager struct {
	cfg     Config
	metrics *Metrics
}

// New constructs a manager registering its metrics on reg
func New(cfg Config, reg prometheus.Registerer) *Manager {
	if cfg.Units <= 0 {
		cfg.Units = 1
	}
	if cfg.Buffer < 0 {
		cfg.Buffer = 0
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Manager{cfg: cfg, metrics: NewMetrics(reg)}
}

// WithUnits returns a manager sharing m's metrics that runs n units; n <= 0 returns m
func (m *Manager) WithUnits(n int) *Manager {
	if n <= 0 || n == m.cfg.Units {
		return m
	}
	c := *m
	c.cfg.Units = n
	return &c
}

// Units returns the number of processing units per run
func (m *Manager) Units() int { return m.cfg.Units }

// Buffer returns the suggested capacity of the event channel
func (m *Manager) Buffer() int { return m.cfg.Buffer }

// Run drives one task per unit over events until the channel is closed, merges the
// unit outputs and terminates a fresh client task on the merged collection
func (m *Manager) Run(
	ctx context.Context,
	events <-chan *flowevent.Event,
	weights *histo.List,
	factory domain.TaskFactory,
) (domain.RunResult, error) {
	if events == nil || factory == nil {
		return domain.RunResult{}, perr.InvalidArgf("pipeline: events and factory are required")
	}
	start := time.Now()
	log := logger.C(ctx)

	units := m.cfg.Units
	outs := make([]*OutputSlot, units)
	stats := make([]domain.UnitStats, units)
	wslot := NewValue(weights)

	g, gctx := errgroup.WithContext(ctx)
	for i := range units {
		outs[i] = NewOutputSlot(nil)
		g.Go(func() error {
			st, err := m.unit(logger.WithUnit(gctx, i), i, events, wslot, outs[i], factory)
			stats[i] = st
			return err
		})
	}
	if err := g.Wait(); err != nil {
		m.metrics.runs.WithLabelValues("failed").Inc()
		return domain.RunResult{}, err
	}

	lists := make([]*histo.List, units)
	for i, o := range outs {
		lists[i] = o.Get()
	}
	merged, err := merge(lists)
	if err != nil {
		m.metrics.runs.WithLabelValues("failed").Inc()
		return domain.RunResult{}, err
	}
	merged = m.terminate(ctx, merged, factory)

	res := domain.RunResult{Merged: merged, Units: stats, Elapsed: time.Since(start)}
	for _, st := range stats {
		res.Events += st.Events
		res.Nil += st.Nil
	}
	m.metrics.runs.WithLabelValues("ok").Inc()
	log.Info().
		Int("units", units).
		Int64("events", res.Events).
		Int64("nil_events", res.Nil).
		Dur("elapsed", res.Elapsed).
		Bool("merged", merged != nil).
		Msg("pipeline run finished")
	return res, nil
}

// Finalize runs only the terminate stage on a collection accumulated elsewhere
func (m *Manager) Finalize(ctx context.Context, merged *histo.List, factory domain.TaskFactory) (*histo.List, error) {
	if merged == nil || factory == nil {
		return nil, perr.InvalidArgf("pipeline: collection and factory are required")
	}
	out := m.terminate(ctx, merged, factory)
	m.metrics.runs.WithLabelValues("finalize").Inc()
	return out, nil
}

func (m *Manager) unit(
	ctx context.Context,
	idx int,
	events <-chan *flowevent.Event,
	weights Value[*histo.List],
	out *OutputSlot,
	factory domain.TaskFactory,
) (st domain.UnitStats, err error) {
	st.Unit = idx
	begin := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = perr.Newf(perr.ErrorCodePanic, "pipeline: unit %d panicked: %v", idx, r)
		}
		st.Elapsed = time.Since(begin)
		st.Posts = out.Posts()
		m.metrics.unitTime.Observe(st.Elapsed.Seconds())
		m.metrics.posts.Add(float64(st.Posts))
	}()

	task := factory()
	cur := &eventSlot{}
	slots := domain.Slots{Events: cur, Output: out}
	if task.NumInputs() >= 2 {
		slots.Weights = weights
	}
	task.Bind(slots)
	task.CreateOutputs(ctx)

	for {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return st, nil
			}
			cur.set(ev)
			task.Exec(ctx)
			if ev == nil {
				st.Nil++
				m.metrics.nilEvts.Inc()
			} else {
				st.Events++
				m.metrics.events.Inc()
			}
		}
	}
}

func (m *Manager) terminate(ctx context.Context, merged *histo.List, factory domain.TaskFactory) *histo.List {
	out := NewOutputSlot(merged)
	client := factory()
	client.Bind(domain.Slots{Events: &eventSlot{}, Output: out})
	client.Terminate(ctx)
	return out.Get()
}

// merge sums the unit outputs into a fresh list named after the first one; nil when no unit produced a list
func merge(lists []*histo.List) (*histo.List, error) {
	var first *histo.List
	for _, l := range lists {
		if l != nil {
			first = l
			break
		}
	}
	if first == nil {
		return nil, nil
	}
	name := first.Name
	merged, err := histo.MergeAll(name, lists...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeMerge, fmt.Sprintf("pipeline: merge %d unit outputs", len(lists)))
	}
	return merged, nil
}
