// pkg/shell/builder.go
package shell

import (
	"fmt"
	"io"
	"log"

	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/pkgset"
	"github.com/CathalMullan/http-body/pkg/rustoverlay"
)

// NixPathVar is the environment variable pointing back at the resolved
// base collection snapshot.
const NixPathVar = "NIX_PATH"

// Builder constructs shell environment descriptors from resolved
// package-set snapshots, following one manifest declaration.
type Builder struct {
	manifest *manifest.Manifest
	logger   *log.Logger
}

// NewBuilder creates a builder for the given declaration
func NewBuilder(m *manifest.Manifest, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Builder{manifest: m, logger: logger}
}

// Toolchain returns the declared toolchain selection
func (b *Builder) Toolchain() rustoverlay.Toolchain {
	spec := b.manifest.Toolchain
	return rustoverlay.Toolchain{
		Channel:    rustoverlay.Channel(spec.Channel),
		Version:    spec.Version,
		Profile:    rustoverlay.Profile(spec.Profile),
		Components: spec.Components,
	}
}

// Build produces the descriptor for one snapshot. The package list is
// ordered: toolchain first, then the auxiliary packages in declared
// order, so output is reproducible byte for byte given the same
// snapshot. Any literal package name absent from the snapshot fails
// with ErrPackageNotFound.
func (b *Builder) Build(snap *pkgset.Snapshot) (*Descriptor, error) {
	toolchain := b.Toolchain()

	b.logger.Printf("Building shell '%s' for %s", b.manifest.Name, snap.System())
	b.logger.Printf("  Toolchain: %s %s (%s profile)", toolchain.Channel, toolchain.Version, toolchain.Profile)

	resolved, err := toolchain.Resolve(snap)
	if err != nil {
		return nil, err
	}

	packages := make([]pkgset.Package, 0, 1+len(b.manifest.Packages))
	packages = append(packages, resolved)

	for _, name := range b.manifest.Packages {
		pkg, err := snap.Get(name)
		if err != nil {
			return nil, err
		}
		if !pkg.SupportsSystem(snap.System()) {
			return nil, fmt.Errorf("%w: '%s' does not build on %s", pkgset.ErrPackageNotFound, name, snap.System())
		}
		packages = append(packages, pkg)
	}

	env := make(map[string]string, 1+len(b.manifest.Env))
	env[NixPathVar] = "nixpkgs=" + snap.SourcePath()
	for name, value := range b.manifest.Env {
		env[name] = value
	}

	b.logger.Printf("✓ Shell '%s' resolved with %d packages", b.manifest.Name, len(packages))

	return &Descriptor{
		Name:      b.manifest.Name,
		System:    snap.System(),
		Toolchain: toolchain,
		Packages:  packages,
		Env:       env,
	}, nil
}
