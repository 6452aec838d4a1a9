package config

import (
	"testing"
	"time"

	kit "flowqfit/internal/platform/testkit"
)

func TestMayGetters(t *testing.T) {
	t.Setenv("CORE_QFIT_HARMONIC", "3")
	t.Setenv("CORE_QFIT_Q_MAX", "12.5")
	t.Setenv("CORE_QFIT_DO_FIT", "false")
	t.Setenv("CORE_QFIT_TIMEOUT", "250ms")
	t.Setenv("CORE_QFIT_BAD_INT", "x")

	c := New().Prefix("CORE_QFIT_")
	if got := c.MayInt("HARMONIC", 2); got != 3 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD_INT", 2); got != 2 {
		t.Fatalf("MayInt invalid = %d", got)
	}
	if got := c.MayFloat64("Q_MAX", 100); got != 12.5 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayFloat64("Q_MIN", 0); got != 0 {
		t.Fatalf("MayFloat64 default = %v", got)
	}
	if c.MayBool("DO_FIT", true) {
		t.Fatal("MayBool should read false")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayString("NAME", "fqd"); got != "fqd" {
		t.Fatalf("MayString default = %q", got)
	}
}

func TestMayEnum(t *testing.T) {
	t.Setenv("CORE_QFIT_MULTIPLICITY_IS", "QVector")
	c := New().Prefix("CORE_QFIT_")
	if got := c.MayEnum("MULTIPLICITY_IS", "rp", "rp", "external", "qvector"); got != "qvector" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("UNSET", "rp", "rp", "external"); got != "rp" {
		t.Fatalf("MayEnum default = %q", got)
	}

	t.Setenv("CORE_QFIT_BAD", "sideways")
	kit.MustPanic(t, func() { c.MayEnum("BAD", "rp", "rp", "external") })
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	kit.MustPanic(t, func() { c.MustString("DBURL") })

	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://x")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("SERVICE_PGSQL_PORT", "nope")
	kit.MustPanic(t, func() { c.MustInt("PORT") })
}
