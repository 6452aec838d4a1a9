// Package http exposes recorded runs and synchronous run triggers over HTTP
package http

import (
	stdhttp "net/http"
	"strconv"

	"flowqfit/internal/modkit/httpkit"
	perr "flowqfit/internal/platform/errors"
	rdom "flowqfit/internal/services/results/domain"
	dom "flowqfit/internal/services/runs/domain"

	"github.com/google/uuid"
)

// Deps are the handler dependencies
type Deps struct {
	Runs    dom.RunPort
	Query   rdom.QueryPort
	Persist bool // store every triggered run
}

type handlers struct{ deps Deps }

// Register mounts the runs endpoints
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Get(r, "/{id}/histograms/{name}", h.histogram)
	httpkit.Post(r, "/", h.trigger)
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	if h.deps.Query == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "runs: results store disabled")
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be a non-negative integer"), "limit")
		}
		limit = n
	}
	return h.deps.Query.List(r.Context(), limit)
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	if h.deps.Query == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "runs: results store disabled")
	}
	id, err := runID(r)
	if err != nil {
		return nil, err
	}
	return h.deps.Query.Get(r.Context(), id)
}

func (h *handlers) histogram(r *stdhttp.Request) (any, error) {
	if h.deps.Query == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "runs: results store disabled")
	}
	id, err := runID(r)
	if err != nil {
		return nil, err
	}
	return h.deps.Query.Histogram(r.Context(), id, httpkit.Param(r, "name"))
}

func (h *handlers) trigger(r *stdhttp.Request, in dom.Request) (any, error) {
	if h.deps.Runs == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "runs: pipeline not wired")
	}
	in.Persist = in.Persist || h.deps.Persist
	return h.deps.Runs.Execute(r.Context(), in)
}

func runID(r *stdhttp.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(httpkit.Param(r, "id"))
	if err != nil {
		return uuid.Nil, perr.WithField(perr.InvalidArgf("run id is not a uuid"), "id")
	}
	return id, nil
}
