package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"flowqfit/internal/core/histo"
	"flowqfit/internal/core/qdist"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/platform/store"
	"flowqfit/internal/services/results/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type row struct {
	vals []any
	err  error
}

func (r row) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dst) != len(r.vals) {
		return errors.New("column count mismatch")
	}
	for i, d := range dst {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

type rows struct {
	data [][]any
	i    int
}

func (r *rows) Next() bool          { r.i++; return r.i <= len(r.data) }
func (r *rows) Scan(d ...any) error { return row{vals: r.data[r.i-1]}.Scan(d...) }
func (r *rows) Err() error          { return nil }
func (r *rows) Close()              {}
func (r *rows) Columns() []string   { return nil }

type querier struct {
	sql  string
	args []any
	row  row
	rows *rows
}

func (q *querier) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	q.sql, q.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *querier) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	q.sql, q.args = sql, args
	return q.rows, nil
}

func (q *querier) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	q.sql, q.args = sql, args
	return q.row
}

type columnar struct {
	table   string
	columns []string
	inserts [][]any
	query   []any
	rows    *rows
}

func (c *columnar) Exec(context.Context, string, ...any) error { return nil }
func (c *columnar) Ping(context.Context) error                 { return nil }
func (c *columnar) Close() error                               { return nil }

func (c *columnar) Insert(_ context.Context, table string, cols []string, rs [][]any) error {
	c.table, c.columns = table, cols
	c.inserts = append(c.inserts, rs...)
	return nil
}

func (c *columnar) Query(_ context.Context, _ string, args ...any) (store.Rows, error) {
	c.query = args
	return c.rows, nil
}

var runID = uuid.MustParse("6f1c1f0e-8a36-4a37-9b1e-3d7d0c1f2a10")

func runRow() []any {
	return []any{
		runID.String(), "lhc10h", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), int64(1500),
		4, int64(1000), int64(3), `{"harmonic":2}`,
		1000.0, 120.5, 1.8, 0.0067, 0.0819, 0.004, true,
	}
}

func TestPG_Insert(t *testing.T) {
	q := &querier{}
	s := NewPG().Bind(q)
	run := domain.Run{
		ID: runID, Name: "lhc10h", Elapsed: 1500 * time.Millisecond, Units: 4,
		Summary: qdist.Results{Entries: 10, Fitted: true},
	}
	if err := s.Insert(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(q.sql, "INSERT INTO qfit_runs") {
		t.Fatalf("sql %s", q.sql)
	}
	if len(q.args) != 15 || q.args[0] != runID.String() || q.args[3] != int64(1500) || q.args[7] != "{}" {
		t.Fatalf("args %v", q.args)
	}
}

func TestPG_GetAndRecent(t *testing.T) {
	q := &querier{row: row{vals: runRow()}, rows: &rows{data: [][]any{runRow(), runRow()}}}
	s := NewPG().Bind(q)

	got, err := s.Get(context.Background(), runID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != runID || got.Elapsed != 1500*time.Millisecond || got.Summary.V != 0.0819 || !got.Summary.Fitted {
		t.Fatalf("run %+v", got)
	}
	if string(got.Config) != `{"harmonic":2}` {
		t.Fatalf("config %s", got.Config)
	}

	list, err := s.Recent(context.Background(), 5)
	if err != nil || len(list) != 2 {
		t.Fatalf("recent %v %v", list, err)
	}
	if q.args[0] != 5 {
		t.Fatalf("limit arg %v", q.args)
	}
}

func TestPG_GetMissing(t *testing.T) {
	s := NewPG().Bind(&querier{row: row{err: pgx.ErrNoRows}})
	if _, err := s.Get(context.Background(), runID); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestCH_InsertBins(t *testing.T) {
	l := histo.NewList("cobjFQD")
	h, _ := histo.NewH1("fqDistribution", "", 10, 0, 10)
	h.Fill(1.5)
	h.Fill(1.5)
	h.Fill(7.5)
	_ = l.Add(h)
	empty, _ := histo.NewH1("fPhiRP", "", 10, 0, 10)
	_ = l.Add(empty)

	c := &columnar{}
	n, err := NewCH(c).InsertBins(context.Background(), runID, l)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || len(c.inserts) != 2 || c.table != BinsTable {
		t.Fatalf("n=%d rows=%v table=%s", n, c.inserts, c.table)
	}
	first := c.inserts[0]
	if len(first) != len(c.columns) || first[1] != "fqDistribution" || first[2] != "h1" || first[3] != int32(2) || first[6] != 2.0 {
		t.Fatalf("row %v", first)
	}

	n, err = NewCH(c).InsertBins(context.Background(), runID, histo.NewList("empty"))
	if err != nil || n != 0 {
		t.Fatalf("empty list: %d %v", n, err)
	}
}

func TestCH_Histogram(t *testing.T) {
	c := &columnar{rows: &rows{data: [][]any{
		{"h1", int32(2), int32(0), 1.5, 2.0, 1.414},
		{"h1", int32(8), int32(0), 7.5, 1.0, 1.0},
	}}}
	h, err := NewCH(c).Histogram(context.Background(), runID, "fqDistribution")
	if err != nil {
		t.Fatal(err)
	}
	if h.Kind != "h1" || len(h.Bins) != 2 || h.Bins[1].X != 8 || h.Bins[0].Content != 2 {
		t.Fatalf("histogram %+v", h)
	}
	if c.query[0] != runID.String() || c.query[1] != "fqDistribution" {
		t.Fatalf("args %v", c.query)
	}

	_, err = NewCH(&columnar{rows: &rows{}}).Histogram(context.Background(), runID, "nope")
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}
