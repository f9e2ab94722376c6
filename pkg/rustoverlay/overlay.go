// pkg/rustoverlay/overlay.go
package rustoverlay

import (
	"fmt"

	"github.com/CathalMullan/http-body/pkg/pkgset"
)

// attrPrefix is the attribute namespace the overlay binds packages
// under.
const attrPrefix = "rust-bin"

// release is one toolchain distribution the overlay knows at the
// pinned revision.
type release struct {
	channel    Channel
	version    string
	components []string
}

// releases are the distributions available at the pinned overlay
// revision. Component availability matches the upstream manifests for
// those releases.
var releases = []release{
	{ChannelStable, "1.82.0", stableComponents},
	{ChannelStable, "1.83.0", stableComponents},
	{ChannelStable, "1.84.0", stableComponents},
	{ChannelBeta, "1.85.0-beta.1", stableComponents},
	{ChannelNightly, "2025-01-04", nightlyComponents},
}

var stableComponents = []string{
	"rustc",
	"cargo",
	"rust-std",
	"clippy",
	"rustfmt",
	"rust-docs",
	"rust-src",
	"rust-analyzer",
	"llvm-tools",
}

var nightlyComponents = append(stableComponents[:len(stableComponents):len(stableComponents)], "miri", "rustc-dev")

// Overlay returns the extension that adds the toolchain release
// channels to a package-set snapshot. It is pure: the packages it
// produces depend only on the snapshot's pin and system.
func Overlay() pkgset.Overlay {
	return pkgset.Overlay{
		Name: "rust-overlay",
		Apply: func(view *pkgset.Snapshot) ([]pkgset.Package, error) {
			packages := make([]pkgset.Package, 0, len(releases))
			for _, rel := range releases {
				name := fmt.Sprintf("%s.%s.%s", attrPrefix, rel.channel, rel.version)
				packages = append(packages, pkgset.Package{
					Name:        name,
					Version:     rel.version,
					StorePath:   pkgset.DerivedStorePath(view.Pin(), view.System(), name, rel.version),
					Description: fmt.Sprintf("Rust toolchain (%s channel, %s)", rel.channel, rel.version),
					Components:  rel.components,
				})
			}
			return packages, nil
		},
	}
}
