package modkit

import (
	phttp "flowqfit/internal/platform/net/http"
)

// Module is the surface every service module offers to main
type Module interface {
	// MountRoutes mounts HTTP routes; modules without routes leave it empty
	MountRoutes(r phttp.Router)
	// Ports returns the module's port set for cross wiring
	Ports() any
	Name() string
}
