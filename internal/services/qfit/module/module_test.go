package module

import (
	"strings"
	"testing"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/modkit"
	modport "flowqfit/internal/modkit/module"
	"flowqfit/internal/platform/config"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/services/qfit/service"
)

func TestFromConfig_Defaults(t *testing.T) {
	opts := FromConfig(config.New().Prefix("TEST_QFIT_UNSET_"))
	if opts != Defaults() {
		t.Fatalf("got %+v", opts)
	}
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("CORE_QFIT_HARMONIC", "3")
	t.Setenv("CORE_QFIT_Q_MAX", "25.5")
	t.Setenv("CORE_QFIT_USE_WEIGHTS", "true")
	t.Setenv("CORE_QFIT_MULTIPLICITY_IS", "QVector")
	t.Setenv("CORE_QFIT_EXACT_NO_RPS", "12")

	opts := FromConfig(config.New())
	if opts.Harmonic != 3 || opts.QMax != 25.5 || !opts.UseWeights || opts.ExactNoRPs != 12 {
		t.Fatalf("got %+v", opts)
	}
	if opts.MultiplicityIs != "qvector" {
		t.Fatalf("multiplicity: %q", opts.MultiplicityIs)
	}
	cfg, err := opts.TaskConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MultiplicityIs != flowevent.MultQVector {
		t.Fatalf("source: %v", cfg.MultiplicityIs)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		field  string
	}{
		{"harmonic", func(o *Options) { o.Harmonic = 0 }, "HARMONIC"},
		{"q bins", func(o *Options) { o.QNbins = 0 }, "Q_NBINS"},
		{"q range", func(o *Options) { o.QMax = o.QMin }, "Q_MAX"},
		{"mult bins", func(o *Options) { o.MultNbins = -1 }, "MULT_NBINS"},
		{"mult range", func(o *Options) { o.MultMin, o.MultMax = 10, 5 }, "MULT_MAX"},
		{"exact rps", func(o *Options) { o.ExactNoRPs = -2 }, "EXACT_NO_RPS"},
		{"source", func(o *Options) { o.MultiplicityIs = "tracks" }, "MULTIPLICITY_IS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := Defaults()
			tc.mutate(&o)
			err := o.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !perr.IsCode(err, perr.ErrorCodeConfig) {
				t.Fatalf("code = %d", perr.CodeOf(err))
			}
			e, ok := perr.As(err)
			if !ok || e.Field() != tc.field {
				t.Fatalf("field: %v", err)
			}
		})
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestNew(t *testing.T) {
	m, err := New(modkit.Deps{Cfg: config.New().Prefix("TEST_QFIT_UNSET_")}, func(o *Options) {
		o.Name = "fqd"
		o.UseWeights = true
	})
	if err != nil {
		t.Fatal(err)
	}
	p := modport.MustPortsOf[Ports](m)
	tk := p.Factory()
	if tk.Name() != "fqd" || tk.NumInputs() != 2 {
		t.Fatalf("task %s/%d", tk.Name(), tk.NumInputs())
	}
	if _, ok := tk.(*service.Task); !ok {
		t.Fatalf("unexpected task type %T", tk)
	}
	if p.Factory() == tk {
		t.Fatal("factory must build a new task each call")
	}
}

func TestNew_InvalidOverride(t *testing.T) {
	_, err := New(modkit.Deps{Cfg: config.New().Prefix("TEST_QFIT_UNSET_")}, func(o *Options) { o.QNbins = 0 })
	if err == nil || !strings.Contains(err.Error(), "Q_NBINS") {
		t.Fatalf("got %v", err)
	}
}

func TestPorts_Build(t *testing.T) {
	m, err := New(modkit.Deps{Cfg: config.New().Prefix("TEST_QFIT_UNSET_")})
	if err != nil {
		t.Fatal(err)
	}
	p := modport.MustPortsOf[Ports](m)
	f, opts, err := p.Build(func(o *Options) { o.Harmonic = 4 })
	if err != nil {
		t.Fatal(err)
	}
	if opts.Harmonic != 4 || p.Options.Harmonic != 2 {
		t.Fatalf("override leaked: built=%d base=%d", opts.Harmonic, p.Options.Harmonic)
	}
	if f().NumInputs() != 1 {
		t.Fatal("unexpected inputs")
	}
	if _, _, err := p.Build(func(o *Options) { o.QMax = -1 }); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("got %v", err)
	}
}
