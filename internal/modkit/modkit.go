package modkit

import (
	phttp "sarcasm/internal/platform/net/http"
)

// Module is the common surface for API modules that can mount routes and expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set interface for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// RootMounter is implemented by modules that also own unversioned routes at the server root
type RootMounter interface {
	MountRoot(r phttp.Router)
}

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) (Module, error)
type Builder func(Deps, ...Option) (Module, error)

// MountAll mounts every module under r and the root mounters under root
func MountAll(root, r phttp.Router, mods ...Module) {
	for _, m := range mods {
		m.MountRoutes(r)
		if rm, ok := m.(RootMounter); ok {
			rm.MountRoot(root)
		}
	}
}
