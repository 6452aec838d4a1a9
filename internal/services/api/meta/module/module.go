// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"flowqfit/internal/modkit"
	"flowqfit/internal/modkit/httpkit"
	str "flowqfit/internal/platform/strings"
	metahttp "flowqfit/internal/services/api/meta/http"
	qfitmod "flowqfit/internal/services/qfit/module"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	register  func(httpkit.Router)
	startedAt time.Time
}

// New constructs a meta module; qfit ports, when injected, are reported under /analysis
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	b := modkit.Build("meta", append([]modkit.Option{modkit.WithPrefix("/meta")}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	d := metahttp.Deps{ServiceName: str.MustString(service, "service name"), StartedAt: m.startedAt}
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	if q, ok := modkit.Port[qfitmod.Ports](b); ok {
		d.Analysis = q.Options
	}
	m.register = func(r httpkit.Router) { metahttp.Register(r, d) }
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
