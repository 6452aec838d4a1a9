package pg

import (
	"context"
	"errors"
	"testing"

	"flowqfit/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	if got := compact("SELECT\n\t a,\n  b   FROM x "); got != "SELECT a, b FROM x" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracer_LevelsAndFields(t *testing.T) {
	l, buf := testkit.CaptureLog()
	tr := Tracer(l.Level(zerolog.Disabled)) // a silenced root still traces
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1", Args: []any{1, 2}, ElapsedUS: 1500})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT pg_sleep(1)", Slow: true, Err: errors.New("boom")})

	out := buf.String()
	testkit.MustContain(t, out, `"component":"pg"`)
	testkit.MustContain(t, out, `"elapsed_ms":1.5`)
	testkit.MustContain(t, out, `"nargs":2`)
	testkit.MustContain(t, out, `"level":"warn"`)
	testkit.MustContain(t, out, `"error":"boom"`)
}

func TestOpen_BadURLAndPoolSeam(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://nope"}, nil); err == nil {
		t.Fatal("expected parse error")
	}

	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return nil, errors.New("no pool")
	})
	_, err := Open(context.Background(), Config{URL: "postgres://u:p@localhost:5432/db", AppName: "flowqfit-test", MaxConns: 3}, nil)
	if err == nil || seen == nil {
		t.Fatalf("seam not used: %v", err)
	}
	if seen.MaxConns != 3 || seen.ConnConfig.RuntimeParams["application_name"] != "flowqfit-test" {
		t.Fatalf("config = %d %v", seen.MaxConns, seen.ConnConfig.RuntimeParams)
	}
}
