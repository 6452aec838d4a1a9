package store

import (
	"context"
	"errors"

	perr "flowqfit/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// ExecOne runs a write and requires exactly one affected row
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "exec")
	}
	if n := tag.RowsAffected(); n != 1 {
		return perr.DBf("expected one row affected, got %d", n)
	}
	return nil
}

// One scans the single row of sql with scan; no row is perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	v, err := scan(q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, perr.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, perr.Wrap(err, perr.ErrorCodeDB, "query row")
	}
	return v, nil
}

// Many scans every row of rs with scan and closes rs
func Many[T any](rs Rows, scan func(Row) (T, error)) ([]T, error) {
	defer rs.Close()
	var out []T
	for rs.Next() {
		v, err := scan(rs)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan")
		}
		out = append(out, v)
	}
	if err := rs.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "rows")
	}
	return out, nil
}

// Query runs sql on q and scans every row
func Query[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "query")
	}
	return Many(rs, scan)
}
