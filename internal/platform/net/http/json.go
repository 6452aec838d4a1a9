package http

import (
	"net/http"

	"flowqfit/internal/platform/net/http/bind"
)

// GetJSON mounts fn on GET and wraps its result in an envelope
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response {
		out, err := fn(req)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	}))
}

// PostJSON mounts fn on POST after binding and validating the body into T; success is 201
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req)
		if err != nil {
			return Error(err)
		}
		out, err := fn(req, in)
		if err != nil {
			return Error(err)
		}
		return Created(out)
	}))
}
