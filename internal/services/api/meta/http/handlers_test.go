package http

import (
	stdctx "context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "flowqfit/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(stdctx.Context) error { return p.err }

func get(t *testing.T, d Deps, path string) map[string]any {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rec.Code != 200 {
		t.Fatalf("%s = %d", path, rec.Code)
	}
	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	return env.Data
}

func TestReady(t *testing.T) {
	cases := []struct {
		name string
		pg   any
		ch   any
		want string
	}{
		{"nothing wired", nil, nil, "ok"},
		{"both up", pinger{}, pinger{}, "ok"},
		{"ch down", pinger{}, pinger{err: errors.New("down")}, "fail"},
		{"no ping", struct{}{}, nil, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := get(t, Deps{ServiceName: "svc", PG: tc.pg, CH: tc.ch}, "/ready")
			if got["status"] != tc.want {
				t.Fatalf("status %v want %s: %+v", got["status"], tc.want, got)
			}
		})
	}
}

func TestInfoEndpoints(t *testing.T) {
	d := Deps{
		ServiceName: "flowqfit-api",
		StartedAt:   time.Now().Add(-time.Minute),
		Analysis:    map[string]int{"harmonic": 2},
	}
	if got := get(t, d, "/health"); got["ok"] != true || got["service"] != "flowqfit-api" {
		t.Fatalf("health %+v", got)
	}
	if got := get(t, d, "/service"); got["uptime"].(float64) < 59 {
		t.Fatalf("service %+v", got)
	}
	if got := get(t, d, "/version"); got["service"] != "flowqfit-api" {
		t.Fatalf("version %+v", got)
	}
	got := get(t, d, "/analysis")
	if got["options"].(map[string]any)["harmonic"] != float64(2) {
		t.Fatalf("analysis %+v", got)
	}
}
