// pkg/shell/descriptor.go
package shell

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/CathalMullan/http-body/pkg/pkgset"
	"github.com/CathalMullan/http-body/pkg/platform"
	"github.com/CathalMullan/http-body/pkg/rustoverlay"
)

// Descriptor is a named, fully resolved shell environment: an ordered
// set of package references plus the environment variables presented
// to a developer on entry. Nothing in it requires further resolution.
type Descriptor struct {
	Name      string
	System    platform.System
	Toolchain rustoverlay.Toolchain
	Packages  []pkgset.Package
	Env       map[string]string
}

// BinPaths returns the bin directory of every package, in package
// order. These are prepended to PATH when the shell is entered.
func (d *Descriptor) BinPaths() []string {
	paths := make([]string, 0, len(d.Packages))
	for _, pkg := range d.Packages {
		paths = append(paths, filepath.Join(pkg.StorePath, "bin"))
	}
	return paths
}

// EnvNames returns the environment variable names in sorted order
func (d *Descriptor) EnvNames() []string {
	names := make([]string, 0, len(d.Env))
	for name := range d.Env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary returns the one-line form used by the show command, e.g.
// "devShells.x86_64-linux.default".
func (d *Descriptor) Summary() string {
	return fmt.Sprintf("devShells.%s.%s", d.System, d.Name)
}
