// pkg/pkgset/snapshot.go
package pkgset

import (
	"fmt"
	"sort"

	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/platform"
)

// Snapshot is a versioned, pinned mapping from package name to package
// definition for one system. It is immutable once the resolver returns
// it; every lookup sees the same bindings.
type Snapshot struct {
	system   platform.System
	pin      manifest.Pin
	source   string
	packages map[string]Package
}

// System returns the system this snapshot was resolved for
func (s *Snapshot) System() platform.System {
	return s.system
}

// Pin returns the base collection pin this snapshot derives from
func (s *Snapshot) Pin() manifest.Pin {
	return s.pin
}

// SourcePath returns the filesystem location of the resolved base
// collection source, so tooling inside a shell can introspect or reuse
// the exact snapshot.
func (s *Snapshot) SourcePath() string {
	return s.source
}

// Get looks a package up by its literal name
func (s *Snapshot) Get(name string) (Package, error) {
	pkg, ok := s.packages[name]
	if !ok {
		return Package{}, fmt.Errorf("%w: '%s' for %s", ErrPackageNotFound, name, s.system)
	}
	return pkg, nil
}

// Has reports whether a package name is bound in the snapshot
func (s *Snapshot) Has(name string) bool {
	_, ok := s.packages[name]
	return ok
}

// Names returns all bound package names in sorted order
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.packages))
	for name := range s.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound packages
func (s *Snapshot) Len() int {
	return len(s.packages)
}
