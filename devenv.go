// devenv.go
package devenv

import (
	"context"
	"fmt"
	"log"

	"github.com/CathalMullan/http-body/pkg/core"
	"github.com/CathalMullan/http-body/pkg/fetch"
	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/pkgset"
	"github.com/CathalMullan/http-body/pkg/platform"
	"github.com/CathalMullan/http-body/pkg/registry"
	"github.com/CathalMullan/http-body/pkg/rustoverlay"
	"github.com/CathalMullan/http-body/pkg/shell"
)

// Re-export the core types for convenience
type (
	System     = platform.System
	Manifest   = manifest.Manifest
	Lock       = manifest.Lock
	Pin        = manifest.Pin
	Package    = pkgset.Package
	Snapshot   = pkgset.Snapshot
	Toolchain  = rustoverlay.Toolchain
	Descriptor = shell.Descriptor
	Registry   = registry.Registry
	Entry      = registry.Entry
)

// baseInput is the input every evaluation resolves the package set
// from.
const baseInput = "nixpkgs"

// overlayInput is the input providing the toolchain release channels
const overlayInput = "rust-overlay"

// Evaluator threads one immutable evaluation context (manifest, lock
// and cache layout) through the resolver and builder.
// Evaluation is a pure, terminating computation over those inputs: the
// only I/O anywhere is the one-time source fetch behind FetchBase.
type Evaluator struct {
	manifest *manifest.Manifest
	lock     *manifest.Lock
	cache    *fetch.Cache
	logger   *log.Logger
}

// NewEvaluator creates an evaluator for one declaration. The lock must
// carry a pin for every input the manifest declares.
func NewEvaluator(m *manifest.Manifest, lock *manifest.Lock, cfg *core.Config) (*Evaluator, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	if err := lock.Verify(m); err != nil {
		return nil, &Error{Op: "verify lock", Err: err}
	}

	return &Evaluator{
		manifest: m,
		lock:     lock,
		cache:    fetch.NewCache(cfg.CacheDir),
		logger:   cfg.Logger(),
	}, nil
}

// Load builds an evaluator from the manifest and lock files referenced
// by the configuration, falling back to the built-in declaration when
// either is absent.
func Load(cfg *core.Config) (*Evaluator, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	lock, err := manifest.LoadLock(cfg.LockPath)
	if err != nil {
		return nil, err
	}

	return NewEvaluator(m, lock, cfg)
}

// Manifest returns the declaration being evaluated
func (e *Evaluator) Manifest() *manifest.Manifest {
	return e.manifest
}

// Lock returns the pins being evaluated against
func (e *Evaluator) Lock() *manifest.Lock {
	return e.lock
}

// Systems returns the systems the registry is built for
func (e *Evaluator) Systems() []platform.System {
	return platform.DefaultSystems()
}

// resolver wires the pinned base collection and the declared overlays.
// The overlay operates on the snapshot it receives, so its base
// reference is the identical pin as the top level; the follows
// declaration in the manifest carries no second pin to diverge.
func (e *Evaluator) resolver() (*pkgset.Resolver, error) {
	pin, err := e.lock.Pin(baseInput)
	if err != nil {
		return nil, &Error{Op: "resolve pin", Package: baseInput, Err: err}
	}

	var overlays []pkgset.Overlay
	if _, ok := e.manifest.Inputs[overlayInput]; ok {
		overlays = append(overlays, rustoverlay.Overlay())
	}

	return pkgset.NewResolver(pkgset.Config{
		Pin:    pin,
		Source: e.cache.Path(baseInput, pin),
		Logger: e.logger,
	}, overlays...), nil
}

// Eval builds the full environment registry: every default system gets
// an entry, either a resolved descriptor or the error that prevented
// one. One system's failure never blocks the others.
func (e *Evaluator) Eval() (*registry.Registry, error) {
	return e.EvalSystems(e.Systems())
}

// EvalSystems builds the registry for an explicit system list
func (e *Evaluator) EvalSystems(systems []platform.System) (*registry.Registry, error) {
	resolver, err := e.resolver()
	if err != nil {
		return nil, err
	}

	builder := shell.NewBuilder(e.manifest, e.logger)

	reg := registry.Build(systems, e.manifest.Name, func(system platform.System) (*shell.Descriptor, error) {
		snap, err := resolver.Resolve(system)
		if err != nil {
			return nil, &Error{Op: "resolve package set", System: string(system), Err: err}
		}

		desc, err := builder.Build(snap)
		if err != nil {
			return nil, &Error{Op: "build shell", System: string(system), Err: err}
		}

		return desc, nil
	})

	return reg, nil
}

// EvalSystem builds the descriptor for a single system
func (e *Evaluator) EvalSystem(system platform.System) (*shell.Descriptor, error) {
	reg, err := e.EvalSystems([]platform.System{system})
	if err != nil {
		return nil, err
	}

	entry, err := reg.Entry(system, e.manifest.Name)
	if err != nil {
		return nil, err
	}
	if entry.Err != nil {
		return nil, entry.Err
	}

	return entry.Descriptor, nil
}

// FetchBase materializes the pinned base collection source in the
// cache, so the descriptor's snapshot reference points at a real tree.
// Repeated calls with the same pin never re-fetch.
func (e *Evaluator) FetchBase(ctx context.Context) (string, error) {
	input, ok := e.manifest.Inputs[baseInput]
	if !ok {
		return "", &Error{Op: "fetch", Package: baseInput, Err: fmt.Errorf("input not declared")}
	}

	pin, err := e.lock.Pin(baseInput)
	if err != nil {
		return "", &Error{Op: "fetch", Package: baseInput, Err: err}
	}

	fetcher := fetch.NewFetcher(e.cache, &fetch.Config{Logger: e.logger})
	return fetcher.Fetch(ctx, baseInput, input, pin)
}
