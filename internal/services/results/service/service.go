// Package service provides the results service implementation
package service

import (
	"context"

	"flowqfit/internal/core/histo"
	"flowqfit/internal/modkit/repokit"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/platform/logger"
	dom "flowqfit/internal/services/results/domain"
	"flowqfit/internal/services/results/repo"

	"github.com/google/uuid"
)

// Config for the results service
type Config struct {
	HardLimit int
}

// Service implements domain.WriterPort and domain.QueryPort.
// Bins is nil when ClickHouse is disabled.
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Bins   *repo.CH
	Cfg    Config
}

// New constructs the results service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], bins *repo.CH, cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	return &Service{DB: db, Binder: binder, Bins: bins, Cfg: cfg}
}

// Save assigns an id when missing, writes the run row and then the histogram cells
func (s *Service) Save(ctx context.Context, run *dom.Run, merged *histo.List) error {
	if run == nil {
		return perr.InvalidArgf("results: nil run")
	}
	if s.DB == nil {
		return perr.New(perr.ErrorCodeUnavailable, "results: postgres disabled")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
		return repokit.MustBind(s.Binder, q).Insert(ctx, *run)
	})
	if err != nil {
		return err
	}

	log := logger.C(ctx).With().Str("run", run.ID.String()).Logger()
	if s.Bins == nil || merged == nil {
		log.Debug().Bool("bins", s.Bins != nil).Msg("run saved without histogram cells")
		return nil
	}
	n, err := s.Bins.InsertBins(ctx, run.ID, merged)
	if err != nil {
		return err
	}
	log.Info().Int("cells", n).Int("histograms", merged.Len()).Msg("run saved")
	return nil
}

// Get implements domain.QueryPort
func (s *Service) Get(ctx context.Context, id uuid.UUID) (dom.Run, error) {
	if s.DB == nil {
		return dom.Run{}, perr.New(perr.ErrorCodeUnavailable, "results: postgres disabled")
	}
	return s.Binder.Bind(s.DB).Get(ctx, id)
}

// List implements domain.QueryPort
func (s *Service) List(ctx context.Context, limit int) ([]dom.Run, error) {
	if s.DB == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "results: postgres disabled")
	}
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	return s.Binder.Bind(s.DB).Recent(ctx, limit)
}

// Histogram implements domain.QueryPort
func (s *Service) Histogram(ctx context.Context, id uuid.UUID, name string) (dom.Histogram, error) {
	if s.Bins == nil {
		return dom.Histogram{}, perr.New(perr.ErrorCodeUnavailable, "results: clickhouse disabled")
	}
	return s.Bins.Histogram(ctx, id, name)
}
