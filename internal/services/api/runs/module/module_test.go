package module

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"flowqfit/internal/modkit"
	phttp "flowqfit/internal/platform/net/http"
	"flowqfit/internal/platform/testkit"
	resultsmod "flowqfit/internal/services/results/module"
	dom "flowqfit/internal/services/runs/domain"
	runsmod "flowqfit/internal/services/runs/module"

	"github.com/go-chi/chi/v5"
)

type noRuns struct{}

func (noRuns) Execute(context.Context, dom.Request) (dom.Outcome, error) { return dom.Outcome{}, nil }

func (noRuns) Finalize(context.Context, dom.FinalizeRequest) (dom.Outcome, error) {
	return dom.Outcome{}, nil
}

func TestNew_RequiresRunsPort(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{}) })
}

func TestMountRoutes(t *testing.T) {
	m := New(modkit.Deps{},
		modkit.WithPorts(runsmod.Ports{Runs: noRuns{}}),
		modkit.WithPorts(resultsmod.Ports{}),
		modkit.WithPrefix("analysis/runs/"),
	)
	if m.Name() != "api-runs" || m.Prefix() != "/analysis/runs" {
		t.Fatalf("name %q prefix %q", m.Name(), m.Prefix())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/analysis/runs", nil))
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("list without store = %d", rec.Code)
	}
}
