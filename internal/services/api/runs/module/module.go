// Package module wires the runs HTTP endpoints into the API
package module

import (
	"net/http"

	"flowqfit/internal/modkit"
	"flowqfit/internal/modkit/httpkit"
	str "flowqfit/internal/platform/strings"
	runshttp "flowqfit/internal/services/api/runs/http"
	resultsmod "flowqfit/internal/services/results/module"
	runsmod "flowqfit/internal/services/runs/module"
)

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// New constructs the API runs module; the runs ports are required, results ports enable the read endpoints
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build("api-runs", append([]modkit.Option{modkit.WithPrefix("/runs")}, opts...)...)

	d := runshttp.Deps{Runs: modkit.MustPort[runsmod.Ports](b).Runs}
	if res, ok := modkit.Port[resultsmod.Ports](b); ok {
		d.Query = res.Query
		d.Persist = res.Writer != nil
	}

	return &Module{
		name:     b.Name,
		prefix:   b.Prefix,
		mws:      b.Mw,
		register: func(r httpkit.Router) { runshttp.Register(r, d) },
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
