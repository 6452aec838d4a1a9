package modkit

import (
	"net/http"

	"flowqfit/internal/modkit/module"
)

// Built is the resolved option set
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  []any
}

// Build applies opts over defaults
func Build(defaultName string, opts ...Option) Built {
	c := buildCfg{name: defaultName}
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   c.name,
		Prefix: c.prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  append([]any(nil), c.ports...),
	}
}

// Port finds the first injected port set implementing T
func Port[T any](b Built) (T, bool) {
	for _, p := range b.Ports {
		if v, ok := module.Find[T](p); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// MustPort is Port that panics naming the module when T was not injected
func MustPort[T any](b Built) T {
	if v, ok := Port[T](b); ok {
		return v
	}
	panic("modkit: " + b.Name + " is missing a required port")
}
