//go:build integration_pg

package pg

import (
	"context"
	"testing"
	"time"

	"flowqfit/internal/platform/store/pg/pgtest"
)

func TestOpen_Integration(t *testing.T) {
	dsn := pgtest.Start(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	p, err := Open(ctx, Config{URL: dsn, AppName: "flowqfit-it", MaxConns: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	var name string
	if err := p.Pool.QueryRow(ctx, "SELECT current_setting('application_name')").Scan(&name); err != nil {
		t.Fatal(err)
	}
	if name != "flowqfit-it" {
		t.Fatalf("application_name = %q", name)
	}
}
