package repo

import (
	"context"

	"flowqfit/internal/modkit/repokit"
	perr "flowqfit/internal/platform/errors"
)

// PGSchema creates the run table
const PGSchema = `
CREATE TABLE IF NOT EXISTS qfit_runs (
	id          uuid PRIMARY KEY,
	name        text NOT NULL,
	started_at  timestamptz NOT NULL,
	elapsed_ms  bigint NOT NULL,
	units       integer NOT NULL,
	events      bigint NOT NULL,
	nil_events  bigint NOT NULL,
	config      jsonb NOT NULL DEFAULT '{}',
	entries     double precision NOT NULL,
	mean_mult   double precision NOT NULL,
	mean_q2     double precision NOT NULL,
	v2          double precision NOT NULL,
	v           double precision NOT NULL,
	v_err       double precision NOT NULL,
	fitted      boolean NOT NULL
);
CREATE INDEX IF NOT EXISTS qfit_runs_started_at ON qfit_runs (started_at DESC)`

// CHSchema creates the histogram cell table
const CHSchema = `
CREATE TABLE IF NOT EXISTS qfit_histogram_bins (
	run_id  String,
	hist    LowCardinality(String),
	kind    LowCardinality(String),
	bin_x   Int32,
	bin_y   Int32,
	center  Float64,
	content Float64,
	error   Float64
) ENGINE = MergeTree
ORDER BY (run_id, hist, bin_x, bin_y)`

// EnsurePG creates the Postgres schema when missing
func EnsurePG(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, PGSchema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "ensure qfit_runs")
	}
	return nil
}

// EnsureCH creates the ClickHouse schema when missing
func EnsureCH(ctx context.Context, ch repokit.Columnar) error {
	if err := ch.Exec(ctx, CHSchema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "ensure qfit_histogram_bins")
	}
	return nil
}
