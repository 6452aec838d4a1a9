// Command flowqfit-api serves the run and meta endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowqfit/internal/core/version"
	"flowqfit/internal/platform/config"
	"flowqfit/internal/platform/logger"
	phttp "flowqfit/internal/platform/net/http"
	"flowqfit/internal/platform/store"

	"flowqfit/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()
	l.Info().Str("build", version.Info(api.ServiceName).String()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open the platform store (SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_*)
	st, err := store.Open(ctx, store.FromConfig(root, api.ServiceName), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		l.Fatal().Err(err).Msg("store not ready")
	}

	// http server (reads API_PORT)
	srv := phttp.NewServer(root)

	// mount our API
	if err := api.Mount(ctx, srv.Router(), api.Options{Config: root, Store: st}); err != nil {
		l.Fatal().Err(err).Msg("mount failed")
	}

	// run
	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second)); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
