// pkg/pkgset/storepath.go
package pkgset

import (
	"crypto/sha256"
	"fmt"

	"zombiezen.com/go/nix/nixbase32"

	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/platform"
)

// storeDir is where resolved packages live
const storeDir = "/nix/store"

// storePathHashLen is the truncated digest length the store uses for
// path names (20 bytes, 32 base32 characters).
const storePathHashLen = 20

// DerivedStorePath computes the deterministic store path for a package
// definition: a truncated sha256 over the base pin, system, name and
// version, spelled in the store's base32 alphabet. Identical inputs
// always yield the identical path, which is what makes descriptors
// reproducible byte for byte. Overlays use this to mint paths for the
// packages they inject.
func DerivedStorePath(pin manifest.Pin, system platform.System, name, version string) string {
	sum := sha256.Sum256([]byte(pin.Rev + ":" + string(system) + ":" + name + ":" + version))
	digest := nixbase32.EncodeToString(sum[:storePathHashLen])

	if version == "" {
		return fmt.Sprintf("%s/%s-%s", storeDir, digest, name)
	}
	return fmt.Sprintf("%s/%s-%s-%s", storeDir, digest, name, version)
}
