// pkg/pkgset/resolver.go
package pkgset

import (
	"fmt"
	"io"
	"log"

	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/platform"
)

// Config configures a Resolver
type Config struct {
	Pin    manifest.Pin // Pinned base collection revision
	Source string       // Filesystem location of the fetched base source
	Logger *log.Logger  // Custom logger (optional)
}

// Resolver produces a package-set snapshot per system: the base
// collection at the pinned revision, augmented by an ordered list of
// overlay extensions. Resolution is a pure computation over the pin;
// no I/O happens here.
type Resolver struct {
	config   Config
	overlays []Overlay
	logger   *log.Logger
}

// NewResolver creates a resolver for the pinned base collection
func NewResolver(config Config, overlays ...Overlay) *Resolver {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Resolver{
		config:   config,
		overlays: overlays,
		logger:   logger,
	}
}

// Resolve produces the snapshot for one system. Identical inputs (same
// pin, same system, same overlay list) always yield an identical
// snapshot. Systems outside the base collection's support set fail
// with ErrUnsupportedPlatform.
func (r *Resolver) Resolve(system platform.System) (*Snapshot, error) {
	if !system.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, system)
	}

	r.logger.Printf("Resolving package set for %s at %s", system, r.config.Pin.ShortRev())

	snap := &Snapshot{
		system:   system,
		pin:      r.config.Pin,
		source:   r.config.Source,
		packages: make(map[string]Package, len(baseCatalog)),
	}

	for _, entry := range baseCatalog {
		snap.packages[entry.name] = Package{
			Name:        entry.name,
			Version:     entry.version,
			StorePath:   DerivedStorePath(r.config.Pin, system, entry.name, entry.version),
			Description: entry.description,
		}
	}

	merged, err := applyOverlays(snap, r.overlays)
	if err != nil {
		return nil, err
	}

	r.logger.Printf("✓ Resolved %d packages for %s", merged.Len(), system)
	return merged, nil
}
