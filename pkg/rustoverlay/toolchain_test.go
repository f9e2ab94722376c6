package rustoverlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/pkgset"
	"github.com/CathalMullan/http-body/pkg/platform"
)

func testSnapshot(t *testing.T, system platform.System) *pkgset.Snapshot {
	t.Helper()

	r := pkgset.NewResolver(pkgset.Config{
		Pin:    manifest.Pin{Rev: "5df43628fdf08d642be8ba5b3625a6c70731c19c"},
		Source: "/tmp/cache/sources/nixpkgs-5df43628fdf0",
	}, Overlay())

	snap, err := r.Resolve(system)
	require.NoError(t, err)
	return snap
}

func pinnedToolchain() Toolchain {
	return Toolchain{
		Channel:    ChannelStable,
		Version:    "1.84.0",
		Profile:    ProfileMinimal,
		Components: []string{"clippy", "rust-analyzer", "rust-docs", "rust-src", "rustfmt"},
	}
}

func TestOverlayBindsReleaseChannels(t *testing.T) {
	snap := testSnapshot(t, platform.SystemX8664Linux)

	require.True(t, snap.Has("rust-bin.stable.1.84.0"))
	require.True(t, snap.Has("rust-bin.stable.1.83.0"))
	require.True(t, snap.Has("rust-bin.nightly.2025-01-04"))
}

func TestResolvePinIntegrity(t *testing.T) {
	// The pinned version must come back literally on every system.
	for _, system := range platform.DefaultSystems() {
		snap := testSnapshot(t, system)

		pkg, err := pinnedToolchain().Resolve(snap)
		require.NoError(t, err)
		require.Equal(t, "1.84.0", pkg.Version, "system %s", system)
		require.Equal(t, "rust-minimal-1.84.0", pkg.Name)
	}
}

func TestResolveComponentUnionInvariant(t *testing.T) {
	snap := testSnapshot(t, platform.SystemAarch64Linux)

	pkg, err := pinnedToolchain().Resolve(snap)
	require.NoError(t, err)

	// Explicit components are unioned in regardless of profile.
	for _, c := range []string{"clippy", "rust-analyzer", "rust-docs", "rust-src", "rustfmt"} {
		require.Contains(t, pkg.Components, c)
	}
	// The minimal profile's implicit set is still there.
	for _, c := range []string{"rustc", "cargo", "rust-std"} {
		require.Contains(t, pkg.Components, c)
	}
}

func TestComponentSetProfileAndExplicitListAreIndependent(t *testing.T) {
	minimal := Toolchain{Channel: ChannelStable, Version: "1.84.0", Profile: ProfileMinimal}
	require.Equal(t, []string{"cargo", "rust-std", "rustc"}, minimal.ComponentSet())

	// Switching profile widens the implicit set without touching the
	// explicit list's contribution.
	def := minimal
	def.Profile = ProfileDefault
	require.Contains(t, def.ComponentSet(), "clippy")

	withExplicit := minimal
	withExplicit.Components = []string{"rust-src", "clippy"}
	set := withExplicit.ComponentSet()
	require.Contains(t, set, "rust-src")
	require.Contains(t, set, "clippy")
	require.Contains(t, set, "rustc")
}

func TestComponentSetDeduplicates(t *testing.T) {
	tc := Toolchain{
		Channel:    ChannelStable,
		Version:    "1.84.0",
		Profile:    ProfileDefault,
		Components: []string{"clippy", "clippy", "rustfmt"},
	}

	set := tc.ComponentSet()
	count := 0
	for _, c := range set {
		if c == "clippy" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestResolveUnknownVersion(t *testing.T) {
	snap := testSnapshot(t, platform.SystemX8664Linux)

	tc := pinnedToolchain()
	tc.Version = "1.50.0"

	_, err := tc.Resolve(snap)
	require.ErrorIs(t, err, pkgset.ErrPackageNotFound)
}

func TestResolveUnknownComponent(t *testing.T) {
	snap := testSnapshot(t, platform.SystemX8664Linux)

	tc := pinnedToolchain()
	tc.Components = append(tc.Components, "miri") // stable releases do not ship miri

	_, err := tc.Resolve(snap)
	require.ErrorIs(t, err, pkgset.ErrPackageNotFound)
}

func TestResolveIsDeterministic(t *testing.T) {
	snap := testSnapshot(t, platform.SystemX8664Darwin)

	first, err := pinnedToolchain().Resolve(snap)
	require.NoError(t, err)
	second, err := pinnedToolchain().Resolve(snap)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
