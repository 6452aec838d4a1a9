package modkit

import (
	"net/http"
	"testing"

	"flowqfit/internal/platform/testkit"
)

type greeter interface{ Greet() string }

type hello struct{}

func (hello) Greet() string { return "hi" }

type portSet struct {
	G greeter
}

func TestBuild_DefaultsAndOptions(t *testing.T) {
	b := Build("runs")
	if b.Name != "runs" || b.Prefix != "" || len(b.Mw) != 0 || len(b.Ports) != 0 {
		t.Fatalf("defaults = %+v", b)
	}

	mw := func(h http.Handler) http.Handler { return h }
	b = Build("runs",
		WithName("runs-v1"),
		WithPrefix("/runs"),
		WithMiddlewares(mw, mw),
		WithPorts(42),
		WithPorts(portSet{G: hello{}}),
	)
	if b.Name != "runs-v1" || b.Prefix != "/runs" || len(b.Mw) != 2 || len(b.Ports) != 2 {
		t.Fatalf("built = %+v", b)
	}
	g, ok := Port[greeter](b)
	if !ok || g.Greet() != "hi" {
		t.Fatal("greeter port not found")
	}
	if _, ok := Port[error](b); ok {
		t.Fatal("unexpected error port")
	}
	testkit.MustPanic(t, func() { MustPort[error](b) })
	testkit.MustNotPanic(t, func() { _ = MustPort[greeter](b) })
}

func TestDeps_Registerer(t *testing.T) {
	if (Deps{}).Registerer() == nil {
		t.Fatal("nil registerer")
	}
}
