// Package module implements the results service module
package module

import (
	"context"

	"flowqfit/internal/modkit"
	phttp "flowqfit/internal/platform/net/http"
	"flowqfit/internal/services/results/domain"
	"flowqfit/internal/services/results/repo"
	"flowqfit/internal/services/results/service"
)

// Ports exposed by the results module
type Ports struct {
	Writer domain.WriterPort
	Query  domain.QueryPort
}

// Module implements the results service module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs a new results module; its ports stay empty when postgres is disabled
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var bins *repo.CH
	if deps.CH != nil {
		bins = repo.NewCH(deps.CH)
	}
	svc := service.New(deps.PG, repo.NewPG(), bins, service.Config{HardLimit: opts.HardLimit})

	m := &Module{deps: deps, opts: opts}
	if deps.PG != nil {
		m.ports = Ports{Writer: svc, Query: svc}
	}
	return m
}

// EnsureSchema creates the tables of every enabled backend when the option is on
func (m *Module) EnsureSchema(ctx context.Context) error {
	if !m.opts.EnsureSchema {
		return nil
	}
	if m.deps.PG != nil {
		if err := repo.EnsurePG(ctx, m.deps.PG); err != nil {
			return err
		}
	}
	if m.deps.CH != nil {
		return repo.EnsureCH(ctx, m.deps.CH)
	}
	return nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "results" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
