package module

import (
	"testing"

	"flowqfit/internal/modkit"
	modport "flowqfit/internal/modkit/module"
	"flowqfit/internal/platform/config"
	"flowqfit/internal/services/pipeline/domain"

	"github.com/prometheus/client_golang/prometheus"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_PIPELINE_UNITS", "8")
	opts := FromConfig(config.New())
	if opts.Units != 8 || opts.Buffer != 256 {
		t.Fatalf("got %+v", opts)
	}
}

func TestNew(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New(), Metrics: prometheus.NewRegistry()}, func(o *Options) { o.Units = 2 })
	p := modport.MustPortsOf[Ports](m)
	if p.Manager.Units() != 2 {
		t.Fatalf("units %d", p.Manager.Units())
	}
	if _, ok := modport.PortsOf[domain.Runner](m); !ok {
		t.Fatal("runner port not found")
	}
}
