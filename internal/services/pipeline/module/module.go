// Package module implements the pipeline module
package module

import (
	"flowqfit/internal/modkit"
	phttp "flowqfit/internal/platform/net/http"
	"flowqfit/internal/services/pipeline/domain"
	"flowqfit/internal/services/pipeline/service"
)

// Ports exposed by the pipeline module
type Ports struct {
	Runner  domain.Runner
	Manager *service.Manager
}

// Module implements the pipeline module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// Override adjusts options after they were read from the environment
type Override func(*Options)

// New constructs a new pipeline module
func New(deps modkit.Deps, overrides ...Override) *Module {
	opts := FromConfig(deps.Cfg)
	for _, o := range overrides {
		o(&opts)
	}
	mgr := service.New(service.Config{Units: opts.Units, Buffer: opts.Buffer}, deps.Registerer())

	m := &Module{deps: deps}
	m.ports = Ports{Runner: mgr, Manager: mgr}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "pipeline" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
