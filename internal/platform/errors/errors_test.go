package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := stderrs.New("disk gone")
	err := Wrap(cause, ErrorCodeInput, "open events")
	if got := err.Error(); got != "open events: disk gone" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
	if Root(fmt.Errorf("outer: %w", err)) != cause {
		t.Fatal("Root should return the deepest cause")
	}

	op := WithOp(err, "flowevents.Open")
	if got := op.Error(); got != "flowevents.Open: open events: disk gone" {
		t.Fatalf("WithOp Error() = %q", got)
	}
	if e, _ := As(err); e.Op() != "" {
		t.Fatal("WithOp must not mutate the original")
	}
}

func TestCodesAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   ErrorCode
		status int
	}{
		{Configf("q range"), ErrorCodeConfig, http.StatusUnprocessableEntity},
		{Inputf("bad line"), ErrorCodeInput, http.StatusBadRequest},
		{Mergef("binning"), ErrorCodeMerge, http.StatusConflict},
		{NotFoundf("run %s", "x"), ErrorCodeNotFound, http.StatusNotFound},
		{DBf("down"), ErrorCodeDB, http.StatusInternalServerError},
		{stderrs.New("plain"), ErrorCodeUnknown, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.code {
			t.Fatalf("CodeOf(%v) = %d, want %d", c.err, got, c.code)
		}
		if got := HTTPStatus(c.err); got != c.status {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.status)
		}
	}
}

func TestWire(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(WithField(Configf("must be >= 1"), "harmonic"))
	if w.Code != ErrorCodeConfig || w.Field != "harmonic" || w.Message != "must be >= 1" {
		t.Fatalf("wire = %+v", w)
	}
	status, w2 := HTTP(stderrs.New("boom"))
	if status != http.StatusInternalServerError || w2.Message != "boom" {
		t.Fatalf("HTTP = %d %+v", status, w2)
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatal("WrapIf(nil) should be nil")
	}
}
