package repo

import (
	"context"

	"flowqfit/internal/core/histo"
	"flowqfit/internal/modkit/repokit"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/services/results/domain"

	"github.com/google/uuid"
)

// BinsTable is the columnar table holding histogram cells
const BinsTable = "qfit_histogram_bins"

var binColumns = []string{"run_id", "hist", "kind", "bin_x", "bin_y", "center", "content", "error"}

// CH stores histogram cells in ClickHouse
type CH struct{ ch repokit.Columnar }

// NewCH constructs a CH repo over a columnar handle
func NewCH(ch repokit.Columnar) *CH { return &CH{ch: ch} }

// InsertBins writes every non-empty cell of every histogram in l as one batch
func (r *CH) InsertBins(ctx context.Context, runID uuid.UUID, l *histo.List) (int, error) {
	var rows [][]any
	id := runID.String()
	l.Each(func(o histo.Object) {
		kind := string(o.Kind())
		for _, c := range histo.Cells(o) {
			rows = append(rows, []any{id, o.GetName(), kind, int32(c.X), int32(c.Y), c.Center, c.Content, c.Error})
		}
	})
	if len(rows) == 0 {
		return 0, nil
	}
	if err := r.ch.Insert(ctx, BinsTable, binColumns, rows); err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeDB, "insert histogram bins")
	}
	return len(rows), nil
}

// Histogram reads one histogram's cells back; no cells is perr.ErrNotFound
func (r *CH) Histogram(ctx context.Context, runID uuid.UUID, name string) (domain.Histogram, error) {
	const sql = `
		SELECT kind, bin_x, bin_y, center, content, error
		FROM qfit_histogram_bins
		WHERE run_id = ? AND hist = ?
		ORDER BY bin_x, bin_y`
	rs, err := r.ch.Query(ctx, sql, runID.String(), name)
	if err != nil {
		return domain.Histogram{}, perr.Wrap(err, perr.ErrorCodeDB, "query histogram bins")
	}
	defer rs.Close()

	out := domain.Histogram{RunID: runID, Name: name}
	for rs.Next() {
		var (
			kind   string
			bx, by int32
			b      domain.Bin
		)
		if err := rs.Scan(&kind, &bx, &by, &b.Center, &b.Content, &b.Error); err != nil {
			return domain.Histogram{}, perr.Wrap(err, perr.ErrorCodeDB, "scan histogram bin")
		}
		out.Kind = kind
		b.X, b.Y = int(bx), int(by)
		out.Bins = append(out.Bins, b)
	}
	if err := rs.Err(); err != nil {
		return domain.Histogram{}, perr.Wrap(err, perr.ErrorCodeDB, "histogram bins")
	}
	if len(out.Bins) == 0 {
		return domain.Histogram{}, perr.ErrNotFound
	}
	return out, nil
}
