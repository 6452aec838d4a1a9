// Package module wires run orchestration from the qfit, pipeline and results modules
package module

import (
	"flowqfit/internal/modkit"
	phttp "flowqfit/internal/platform/net/http"
	pdom "flowqfit/internal/services/pipeline/domain"
	pipemod "flowqfit/internal/services/pipeline/module"
	qfitmod "flowqfit/internal/services/qfit/module"
	rdom "flowqfit/internal/services/results/domain"
	resultsmod "flowqfit/internal/services/results/module"
	"flowqfit/internal/services/runs/domain"
	"flowqfit/internal/services/runs/service"
)

// Ports exposed by the runs module
type Ports struct {
	Runs domain.RunPort
}

// Module implements the runs module
type Module struct {
	deps  modkit.Deps
	name  string
	ports Ports
}

// New constructs the runs module; qfit and pipeline ports are required, results ports are optional
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build("runs", opts...)
	qfit := modkit.MustPort[qfitmod.Ports](b)
	pipe := modkit.MustPort[pipemod.Ports](b)

	var writer rdom.WriterPort
	if res, ok := modkit.Port[resultsmod.Ports](b); ok {
		writer = res.Writer
	}
	mgr := pipe.Manager
	svc := service.New(qfit.Build, func(n int) pdom.Runner { return mgr.WithUnits(n) }, writer, service.Config{
		Buffer: mgr.Buffer(),
	})

	m := &Module{deps: deps, name: b.Name}
	m.ports = Ports{Runs: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
