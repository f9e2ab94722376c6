package pkgset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/platform"
)

func testPin() manifest.Pin {
	return manifest.Pin{
		Rev:          "5df43628fdf08d642be8ba5b3625a6c70731c19c",
		NarHash:      "sha256-jkaYh4bmuCn5iBRdpiWHEhFgKZx5jKAvfruVt4gCDaA=",
		LastModified: 1736012032,
	}
}

func testConfig() Config {
	return Config{Pin: testPin(), Source: "/tmp/cache/sources/nixpkgs-5df43628fdf0"}
}

func TestResolveProducesTheBaseCatalog(t *testing.T) {
	r := NewResolver(testConfig())

	snap, err := r.Resolve(platform.SystemX8664Linux)
	require.NoError(t, err)

	for _, name := range []string{"taplo", "nixfmt-rfc-style", "nixd", "nil"} {
		require.True(t, snap.Has(name), "missing %s", name)
	}

	taplo, err := snap.Get("taplo")
	require.NoError(t, err)
	require.Equal(t, "0.9.3", taplo.Version)
	require.Contains(t, taplo.StorePath, "/nix/store/")
	require.Contains(t, taplo.StorePath, "-taplo-0.9.3")
}

func TestResolveRejectsUnsupportedSystems(t *testing.T) {
	r := NewResolver(testConfig())

	_, err := r.Resolve(platform.System("riscv64-linux"))
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestResolveIsDeterministic(t *testing.T) {
	r := NewResolver(testConfig())

	first, err := r.Resolve(platform.SystemAarch64Darwin)
	require.NoError(t, err)
	second, err := r.Resolve(platform.SystemAarch64Darwin)
	require.NoError(t, err)

	require.Equal(t, first.Names(), second.Names())
	for _, name := range first.Names() {
		a, err := first.Get(name)
		require.NoError(t, err)
		b, err := second.Get(name)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestStorePathsDifferPerSystem(t *testing.T) {
	pin := testPin()

	linux := DerivedStorePath(pin, platform.SystemX8664Linux, "taplo", "0.9.3")
	darwin := DerivedStorePath(pin, platform.SystemX8664Darwin, "taplo", "0.9.3")
	require.NotEqual(t, linux, darwin)

	// Same inputs, same path.
	require.Equal(t, linux, DerivedStorePath(pin, platform.SystemX8664Linux, "taplo", "0.9.3"))
}

func TestStorePathsDifferPerPin(t *testing.T) {
	other := testPin()
	other.Rev = "0000000000000000000000000000000000000000"

	require.NotEqual(t,
		DerivedStorePath(testPin(), platform.SystemX8664Linux, "taplo", "0.9.3"),
		DerivedStorePath(other, platform.SystemX8664Linux, "taplo", "0.9.3"))
}

func TestGetUnknownPackage(t *testing.T) {
	r := NewResolver(testConfig())

	snap, err := r.Resolve(platform.SystemX8664Linux)
	require.NoError(t, err)

	_, err = snap.Get("no-such-package")
	require.ErrorIs(t, err, ErrPackageNotFound)
}

func TestOverlaysApplyInDeclaredOrderLastWriterWins(t *testing.T) {
	mk := func(name, version string) Overlay {
		return Overlay{
			Name: name,
			Apply: func(view *Snapshot) ([]Package, error) {
				return []Package{{Name: "tool", Version: version}}, nil
			},
		}
	}

	r := NewResolver(testConfig(), mk("first", "1.0.0"), mk("second", "2.0.0"))

	snap, err := r.Resolve(platform.SystemX8664Linux)
	require.NoError(t, err)

	tool, err := snap.Get("tool")
	require.NoError(t, err)
	require.Equal(t, "2.0.0", tool.Version)
}

func TestOverlaySeesEarlierBindings(t *testing.T) {
	first := Overlay{
		Name: "first",
		Apply: func(view *Snapshot) ([]Package, error) {
			return []Package{{Name: "tool", Version: "1.0.0"}}, nil
		},
	}
	var sawTool bool
	second := Overlay{
		Name: "second",
		Apply: func(view *Snapshot) ([]Package, error) {
			sawTool = view.Has("tool")
			return nil, nil
		},
	}

	r := NewResolver(testConfig(), first, second)
	_, err := r.Resolve(platform.SystemX8664Linux)
	require.NoError(t, err)
	require.True(t, sawTool)
}

// Overlays derive a new snapshot rather than editing the one they are
// handed, so a base snapshot survives application unchanged.
func TestOverlayApplicationLeavesTheInputSnapshotUntouched(t *testing.T) {
	base := &Snapshot{
		system: platform.SystemX8664Linux,
		pin:    testPin(),
		packages: map[string]Package{
			"tool": {Name: "tool", Version: "1.0.0"},
		},
	}

	rebind := Overlay{
		Name: "rebind",
		Apply: func(view *Snapshot) ([]Package, error) {
			return []Package{
				{Name: "tool", Version: "2.0.0"},
				{Name: "extra", Version: "0.1.0"},
			}, nil
		},
	}

	merged, err := applyOverlays(base, []Overlay{rebind})
	require.NoError(t, err)

	orig, err := base.Get("tool")
	require.NoError(t, err)
	require.Equal(t, "1.0.0", orig.Version)
	require.False(t, base.Has("extra"))
	require.Equal(t, 1, base.Len())

	replaced, err := merged.Get("tool")
	require.NoError(t, err)
	require.Equal(t, "2.0.0", replaced.Version)
	require.True(t, merged.Has("extra"))
}

func TestOverlayReturningNothingPreservesAllBindings(t *testing.T) {
	noop := Overlay{
		Name:  "noop",
		Apply: func(view *Snapshot) ([]Package, error) { return nil, nil },
	}

	with, err := NewResolver(testConfig(), noop).Resolve(platform.SystemX8664Linux)
	require.NoError(t, err)
	without, err := NewResolver(testConfig()).Resolve(platform.SystemX8664Linux)
	require.NoError(t, err)

	require.Equal(t, without.Names(), with.Names())
	for _, name := range without.Names() {
		a, err := without.Get(name)
		require.NoError(t, err)
		b, err := with.Get(name)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestConflictingBindingsWithinOneOverlay(t *testing.T) {
	conflicting := Overlay{
		Name: "conflicting",
		Apply: func(view *Snapshot) ([]Package, error) {
			return []Package{
				{Name: "tool", Version: "1.0.0"},
				{Name: "tool", Version: "2.0.0"},
			}, nil
		},
	}

	r := NewResolver(testConfig(), conflicting)
	_, err := r.Resolve(platform.SystemX8664Linux)
	require.ErrorIs(t, err, ErrOverlayConflict)
}

func TestSnapshotCarriesPinAndSource(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg)

	snap, err := r.Resolve(platform.SystemX8664Linux)
	require.NoError(t, err)
	require.Equal(t, cfg.Pin, snap.Pin())
	require.Equal(t, cfg.Source, snap.SourcePath())
	require.Equal(t, platform.SystemX8664Linux, snap.System())
}
