// Command flowqfit-run streams a flow events file through the q-distribution task and prints the fit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"flowqfit/internal/core/histo"
	"flowqfit/internal/core/version"
	"flowqfit/internal/modkit"
	"flowqfit/internal/modkit/module"
	"flowqfit/internal/platform/config"
	"flowqfit/internal/platform/logger"
	"flowqfit/internal/platform/store"

	pipemod "flowqfit/internal/services/pipeline/module"
	qfitmod "flowqfit/internal/services/qfit/module"
	resultsmod "flowqfit/internal/services/results/module"
	rundom "flowqfit/internal/services/runs/domain"
	runsmod "flowqfit/internal/services/runs/module"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const service = "flowqfit-run"

func main() {
	var (
		events   = flag.String("events", "", "events file (.jsonl, optionally gzipped)")
		weights  = flag.String("weights", "", "weights collection; enables the second input")
		units    = flag.Int("units", 0, "processing units (0 = CORE_PIPELINE_UNITS)")
		name     = flag.String("name", "", "run name (default: events file name)")
		out      = flag.String("out", "", "write the finished collection to this artifact")
		finalize = flag.String("finalize-only", "", "skip accumulation and finish this artifact")
		persist  = flag.Bool("persist", false, "store the run in postgres and clickhouse")
		showVer  = flag.Bool("version", false, "print the build and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version.Info(service))
		return
	}
	if *events == "" && *finalize == "" {
		fmt.Fprintln(os.Stderr, "one of -events or -finalize-only is required")
		flag.Usage()
		os.Exit(2)
	}
	if *name == "" {
		*name = runName(*events, *finalize)
	}

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := modkit.Deps{Log: *l, Cfg: root}
	if *persist {
		st, err := store.Open(ctx, store.FromConfig(root, service), store.WithLogger(*l))
		if err != nil {
			l.Fatal().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		deps.PG, deps.CH = st.PG, st.CH
	}

	// Build dependency modules first
	qm, err := qfitmod.New(deps)
	if err != nil {
		l.Fatal().Err(err).Msg("invalid task configuration")
	}
	pm := pipemod.New(deps)
	rm := resultsmod.New(deps)
	if *persist {
		if err := rm.EnsureSchema(ctx); err != nil {
			l.Fatal().Err(err).Msg("ensure schema failed")
		}
	}
	runs := module.MustPortsOf[runsmod.Ports](runsmod.New(deps,
		modkit.WithPorts(qm.Ports()),
		modkit.WithPorts(pm.Ports()),
		modkit.WithPorts(rm.Ports()),
	)).Runs

	var outcome rundom.Outcome
	if *finalize != "" {
		outcome, err = runs.Finalize(ctx, rundom.FinalizeRequest{Name: *name, ArtifactPath: *finalize, Persist: *persist})
	} else {
		outcome, err = runs.Execute(ctx, rundom.Request{
			Name:        *name,
			EventsPath:  *events,
			WeightsPath: *weights,
			Units:       *units,
			Persist:     *persist,
		})
	}
	if err != nil {
		l.Fatal().Err(err).Msg("run failed")
	}

	if *out != "" && outcome.Merged != nil {
		if err := histo.WriteFile(*out, outcome.Merged); err != nil {
			l.Fatal().Err(err).Str("path", *out).Msg("write artifact failed")
		}
	}
	summarize(os.Stdout, outcome, *out)
}

func runName(events, artifact string) string {
	if events != "" {
		return filepath.Base(events)
	}
	return filepath.Base(artifact)
}

func summarize(w io.Writer, o rundom.Outcome, artifact string) {
	p := message.NewPrinter(language.English)
	r := o.Run
	p.Fprintf(w, "run       %s (%s)\n", r.Name, r.ID)
	p.Fprintf(w, "events    %d (%d empty, %d skipped lines) on %d units in %v\n",
		r.Events, r.NilEvents, o.Input.Skipped, r.Units, r.Elapsed.Round(time.Millisecond))
	s := r.Summary
	p.Fprintf(w, "entries   %.0f\n", s.Entries)
	p.Fprintf(w, "<M>       %.3f\n", s.MeanMult)
	p.Fprintf(w, "<q^2>     %.5f\n", s.MeanQ2)
	if s.Fitted {
		p.Fprintf(w, "v         %.5f +/- %.5f (v^2 = %.6f)\n", s.V, s.VErr, s.V2)
	} else {
		p.Fprintf(w, "v         not fitted\n")
	}
	if artifact != "" {
		p.Fprintf(w, "artifact  %s\n", artifact)
	}
	if o.Saved {
		p.Fprintf(w, "stored    yes\n")
	}
}
