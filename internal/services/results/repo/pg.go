// Package repo provides the results repository implementations
package repo

import (
	"context"
	"time"

	"flowqfit/internal/modkit/repokit"
	"flowqfit/internal/platform/store"
	"flowqfit/internal/services/results/domain"

	"github.com/google/uuid"
)

// Storage is the run table surface used by the service layer
type Storage interface {
	Insert(ctx context.Context, r domain.Run) error
	Get(ctx context.Context, id uuid.UUID) (domain.Run, error)
	Recent(ctx context.Context, limit int) ([]domain.Run, error)
}

type (
	// PG is the Postgres implementation of Storage
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

const runColumns = `id::text, name, started_at, elapsed_ms, units, events, nil_events, config::text,
	entries, mean_mult, mean_q2, v2, v, v_err, fitted`

// Insert writes one run row
func (r *queries) Insert(ctx context.Context, run domain.Run) error {
	const sql = `
		INSERT INTO qfit_runs
			(id, name, started_at, elapsed_ms, units, events, nil_events, config,
			 entries, mean_mult, mean_q2, v2, v, v_err, fitted)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12, $13, $14, $15)`
	cfg := string(run.Config)
	if cfg == "" {
		cfg = "{}"
	}
	s := run.Summary
	return store.ExecOne(ctx, r.q, sql,
		run.ID.String(), run.Name, run.StartedAt.UTC(), run.Elapsed.Milliseconds(),
		run.Units, run.Events, run.NilEvents, cfg,
		s.Entries, s.MeanMult, s.MeanQ2, s.V2, s.V, s.VErr, s.Fitted,
	)
}

// Get reads one run by id
func (r *queries) Get(ctx context.Context, id uuid.UUID) (domain.Run, error) {
	return store.One(ctx, r.q, scanRun, `SELECT `+runColumns+` FROM qfit_runs WHERE id = $1::uuid`, id.String())
}

// Recent lists the newest runs first
func (r *queries) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	return store.Query(ctx, r.q, scanRun,
		`SELECT `+runColumns+` FROM qfit_runs ORDER BY started_at DESC, id LIMIT $1`, limit)
}

func scanRun(row store.Row) (domain.Run, error) {
	var (
		run       domain.Run
		id, cfg   string
		elapsedMs int64
	)
	s := &run.Summary
	if err := row.Scan(
		&id, &run.Name, &run.StartedAt, &elapsedMs, &run.Units, &run.Events, &run.NilEvents, &cfg,
		&s.Entries, &s.MeanMult, &s.MeanQ2, &s.V2, &s.V, &s.VErr, &s.Fitted,
	); err != nil {
		return domain.Run{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Run{}, err
	}
	run.ID = parsed
	run.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	run.Config = []byte(cfg)
	return run, nil
}
