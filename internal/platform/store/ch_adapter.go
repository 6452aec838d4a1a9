package store

import (
	"context"

	"flowqfit/internal/platform/store/ch"
)

func newCHAdapter(c *ch.CH) Clickhouse { return &chAdapter{inner: c} }

// chAdapter narrows *ch.CH to the Clickhouse seam
type chAdapter struct{ inner *ch.CH }

func (a *chAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return a.inner.Exec(ctx, sql, args...)
}

func (a *chAdapter) Insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	return a.inner.Insert(ctx, table, columns, rows)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error { return a.inner.Ping(ctx) }
func (a *chAdapter) Close() error                   { return a.inner.Close() }

// chRows drops the error from driver.Rows.Close to fit Rows
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
