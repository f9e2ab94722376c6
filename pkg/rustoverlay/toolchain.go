// pkg/rustoverlay/toolchain.go
package rustoverlay

import (
	"fmt"
	"sort"

	"github.com/CathalMullan/http-body/pkg/pkgset"
)

// Channel is a toolchain release channel
type Channel string

const (
	ChannelStable  Channel = "stable"
	ChannelBeta    Channel = "beta"
	ChannelNightly Channel = "nightly"
)

// Profile controls the implicit default component set of a toolchain.
// The explicit component list is always unioned in on top, regardless
// of profile.
type Profile string

const (
	ProfileMinimal Profile = "minimal"
	ProfileDefault Profile = "default"
)

// profileComponents is the implicit component set per profile
var profileComponents = map[Profile][]string{
	ProfileMinimal: {"rustc", "cargo", "rust-std"},
	ProfileDefault: {"rustc", "cargo", "rust-std", "clippy", "rustfmt", "rust-docs"},
}

// Toolchain is the pinned (channel, version, profile, components)
// tuple identifying exactly one compiler distribution. The version is
// a literal string, never resolved dynamically.
type Toolchain struct {
	Channel    Channel
	Version    string
	Profile    Profile
	Components []string
}

// AttrName returns the snapshot attribute the toolchain resolves
// through, e.g. "rust-bin.stable.1.84.0".
func (t Toolchain) AttrName() string {
	return fmt.Sprintf("%s.%s.%s", attrPrefix, t.Channel, t.Version)
}

// ComponentSet returns the profile's implicit components unioned with
// the explicit list, sorted and de-duplicated. Profile and explicit
// list are independent axes: the profile only controls the implicit
// default set.
func (t Toolchain) ComponentSet() []string {
	seen := make(map[string]struct{})
	for _, c := range profileComponents[t.Profile] {
		seen[c] = struct{}{}
	}
	for _, c := range t.Components {
		seen[c] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Resolve selects the toolchain package from the snapshot using the
// pinned key and applies the profile and component union. The returned
// package is fully resolved; no further version resolution happens
// when a shell is entered.
func (t Toolchain) Resolve(snap *pkgset.Snapshot) (pkgset.Package, error) {
	entry, err := snap.Get(t.AttrName())
	if err != nil {
		return pkgset.Package{}, err
	}

	available := make(map[string]struct{}, len(entry.Components))
	for _, c := range entry.Components {
		available[c] = struct{}{}
	}

	components := t.ComponentSet()
	for _, c := range components {
		if _, ok := available[c]; !ok {
			return pkgset.Package{}, fmt.Errorf("%w: component '%s' of %s for %s", pkgset.ErrPackageNotFound, c, t.AttrName(), snap.System())
		}
	}

	name := fmt.Sprintf("rust-%s-%s", t.Profile, t.Version)
	return pkgset.Package{
		Name:        name,
		Version:     t.Version,
		StorePath:   pkgset.DerivedStorePath(snap.Pin(), snap.System(), name, t.Version),
		Description: entry.Description,
		Components:  components,
	}, nil
}
