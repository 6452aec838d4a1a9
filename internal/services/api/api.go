// Package api provides the HTTP API for the application
package api

import (
	"context"
	"strings"
	"time"

	"flowqfit/internal/platform/config"
	"flowqfit/internal/platform/logger"
	phttp "flowqfit/internal/platform/net/http"
	"flowqfit/internal/platform/net/middleware"
	"flowqfit/internal/platform/store"

	"flowqfit/internal/modkit"
	"flowqfit/internal/modkit/httpkit"
	"flowqfit/internal/modkit/module"

	metamod "flowqfit/internal/services/api/meta/module"
	apiruns "flowqfit/internal/services/api/runs/module"
	pipemod "flowqfit/internal/services/pipeline/module"
	qfitmod "flowqfit/internal/services/qfit/module"
	resultsmod "flowqfit/internal/services/results/module"
	runsmod "flowqfit/internal/services/runs/module"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName identifies the API in logs and version output
const ServiceName = "flowqfit-api"

// Options are the API options; Config is the root view, API settings live under CORE_API_
type Options struct {
	Config  config.Conf
	Store   *store.Store
	Metrics *prometheus.Registry
}

// Mount builds every module, creates result tables when enabled and mounts the routes
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	reg := opt.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:     *logger.Named("api"),
		Cfg:     opt.Config,
		Metrics: reg,
	}
	if opt.Store != nil {
		deps.PG, deps.CH = opt.Store.PG, opt.Store.CH
	}

	qfit, err := qfitmod.New(deps)
	if err != nil {
		return err
	}
	pipe := pipemod.New(deps)
	results := resultsmod.New(deps)
	if err := results.EnsureSchema(ctx); err != nil {
		return err
	}
	runs := runsmod.New(deps,
		modkit.WithPorts(qfit.Ports()),
		modkit.WithPorts(pipe.Ports()),
		modkit.WithPorts(results.Ports()),
	)

	mods := []module.Module{
		qfit,
		pipe,
		results,
		runs,
		metamod.New(deps, ServiceName, modkit.WithPorts(qfit.Ports())),
		apiruns.New(deps, modkit.WithPorts(runs.Ports()), modkit.WithPorts(results.Ports())),
	}

	ac := opt.Config.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: splitCSV(ac.MayString("CORS_ORIGINS", "")),
		Timeout:     ac.MayDuration("TIMEOUT", 5*time.Minute),
		SlowRequest: ac.MayDuration("SLOW_REQUEST", 2*time.Second),
		Metrics:     middleware.NewHTTPMetrics(reg),
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.Name())
	}
	logger.Named("api").Info().Strs("modules", names).Msg("api mounted")
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
