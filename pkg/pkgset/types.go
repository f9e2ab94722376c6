// pkg/pkgset/types.go
package pkgset

import (
	"github.com/CathalMullan/http-body/pkg/platform"
)

// Package is one buildable definition within a package-set snapshot
type Package struct {
	Name        string            // Attribute name in the collection (e.g. "taplo")
	Version     string            // Package version
	StorePath   string            // Fully resolved store path
	Description string            // One-line description
	Systems     []platform.System // Systems the package builds on; empty means all
	Components  []string          // For toolchain packages: resolved component set
}

// SupportsSystem reports whether the package builds on the given system
func (p Package) SupportsSystem(s platform.System) bool {
	if len(p.Systems) == 0 {
		return true
	}
	for _, sys := range p.Systems {
		if sys == s {
			return true
		}
	}
	return false
}

// Equal reports whether two definitions are interchangeable bindings
// for the same name. Overlay conflict detection relies on this.
func (p Package) Equal(o Package) bool {
	if p.Name != o.Name || p.Version != o.Version || p.StorePath != o.StorePath {
		return false
	}
	if len(p.Components) != len(o.Components) {
		return false
	}
	for i, c := range p.Components {
		if o.Components[i] != c {
			return false
		}
	}
	return true
}
