// Package module resolves typed ports out of module port sets
package module

import phttp "flowqfit/internal/platform/net/http"

// Module mirrors modkit.Module without importing it
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
