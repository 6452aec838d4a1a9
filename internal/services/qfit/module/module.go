// Package module wires the q-distribution task into the pipeline
package module

import (
	"flowqfit/internal/core/qdist"
	"flowqfit/internal/modkit"
	phttp "flowqfit/internal/platform/net/http"
	pdom "flowqfit/internal/services/pipeline/domain"
	"flowqfit/internal/services/qfit/domain"
	"flowqfit/internal/services/qfit/service"
)

// Ports exposed by the qfit module
type Ports struct {
	Factory pdom.TaskFactory
	Options Options
	Config  domain.Config
	Build   Builder
}

// Builder returns a task factory for the module options with overrides applied
type Builder func(overrides ...Override) (pdom.TaskFactory, Options, error)

// Module implements the qfit module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// Override adjusts options after they were read from the environment
type Override func(*Options)

// NewAnalyzer is the production analyzer constructor
func NewAnalyzer() domain.Analyzer { return qdist.New() }

// New constructs the module; invalid options are returned as ErrorCodeConfig
func New(deps modkit.Deps, overrides ...Override) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	for _, o := range overrides {
		o(&opts)
	}
	factory, cfg, err := FactoryFor(opts)
	if err != nil {
		return nil, err
	}

	m := &Module{deps: deps}
	m.ports = Ports{
		Factory: factory,
		Options: opts,
		Config:  cfg,
		Build: func(more ...Override) (pdom.TaskFactory, Options, error) {
			o := opts
			for _, fn := range more {
				fn(&o)
			}
			f, _, err := FactoryFor(o)
			return f, o, err
		},
	}
	return m, nil
}

// FactoryFor validates opts and returns a factory of tasks over the production analyzer
func FactoryFor(opts Options) (pdom.TaskFactory, domain.Config, error) {
	cfg, err := opts.TaskConfig()
	if err != nil {
		return nil, domain.Config{}, err
	}
	return func() pdom.Task { return service.New(opts.Name, cfg, NewAnalyzer) }, cfg, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "qfit" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
