// Package httpkit re-exports the platform http seam for modules so they do not
// import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "flowqfit/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Response is a return-style handler result
	Response = phttp.Response
	// Envelope is the response body
	Envelope = phttp.Envelope
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a return-style handler
func Handle(fn func(*http.Request) Response) http.HandlerFunc { return phttp.Handle(fn) }

// Get mounts a JSON GET handler
func Get(r Router, path string, fn func(*http.Request) (any, error)) { phttp.GetJSON(r, path, fn) }

// Post mounts a JSON POST handler with a bound and validated body
func Post[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, fn)
}

// Param returns a path parameter
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }
