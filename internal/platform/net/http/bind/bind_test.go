package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "flowqfit/internal/platform/errors"
)

type body struct {
	Name  string `json:"name" validate:"required"`
	Units int    `json:"units" validate:"min=1,max=64"`
}

type ranged struct {
	Lo float64 `env:"LO"`
	Hi float64 `env:"HI" validate:"gtfield=Lo"`
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name, in string
		code     perr.ErrorCode
		msg      string
	}{
		{"ok", `{"name":"a","units":2}`, 0, ""},
		{"empty", ``, perr.ErrorCodeJSON, "empty body"},
		{"garbage", `{`, perr.ErrorCodeJSON, "invalid JSON"},
		{"unknown field", `{"name":"a","units":1,"x":1}`, perr.ErrorCodeJSON, "unknown field"},
		{"trailing", `{"name":"a","units":1}{}`, perr.ErrorCodeJSON, "trailing"},
		{"required", `{"units":1}`, perr.ErrorCodeValidation, "name is a required field"},
		{"min", `{"name":"a","units":0}`, perr.ErrorCodeValidation, "units must be at least 1"},
		{"max", `{"name":"a","units":65}`, perr.ErrorCodeValidation, "units must be at most 64"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.in))
			got, err := ParseJSON[body](r)
			if tc.msg == "" {
				if err != nil || got.Name != "a" {
					t.Fatalf("got %+v, %v", got, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tc.msg)
			}
			if perr.CodeOf(err) != tc.code || !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("got code=%d err=%v", perr.CodeOf(err), err)
			}
		})
	}
}

func TestValidate_FieldAndEnvTags(t *testing.T) {
	err := Validate(ranged{Lo: 2, Hi: 1}, perr.ErrorCodeConfig)
	if perr.CodeOf(err) != perr.ErrorCodeConfig {
		t.Fatalf("code = %d", perr.CodeOf(err))
	}
	e, ok := perr.As(err)
	if !ok || e.Field() != "HI" {
		t.Fatalf("field = %v", err)
	}
	if !strings.Contains(err.Error(), "HI must be greater than Lo") {
		t.Fatalf("msg = %v", err)
	}
	if Validate(ranged{Lo: 1, Hi: 2}, perr.ErrorCodeConfig) != nil {
		t.Fatal("valid struct rejected")
	}
	if err := Validate(42, perr.ErrorCodeConfig); err == nil {
		t.Fatal("non-struct should fail")
	}
}
