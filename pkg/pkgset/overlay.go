// pkg/pkgset/overlay.go
package pkgset

import "fmt"

// Overlay augments a package-set snapshot with additional or replaced
// package definitions. Apply must be pure: given the same snapshot view
// it returns the same packages, with no side effects. Overlays run in
// declared list order and the last writer wins on name conflicts
// between overlays; conflicting bindings within a single overlay are a
// hard error.
type Overlay struct {
	Name  string
	Apply func(view *Snapshot) ([]Package, error)
}

// applyOverlays folds each overlay's packages into a derived snapshot
// in declared order, leaving the input snapshot untouched. The view
// handed to each overlay includes all bindings established so far, so
// later overlays can key off earlier ones.
func applyOverlays(base *Snapshot, overlays []Overlay) (*Snapshot, error) {
	merged := &Snapshot{
		system:   base.system,
		pin:      base.pin,
		source:   base.source,
		packages: make(map[string]Package, len(base.packages)),
	}
	for name, pkg := range base.packages {
		merged.packages[name] = pkg
	}

	for _, ov := range overlays {
		added, err := ov.Apply(merged)
		if err != nil {
			return nil, fmt.Errorf("overlay '%s': %w", ov.Name, err)
		}

		seen := make(map[string]Package, len(added))
		for _, pkg := range added {
			if prev, ok := seen[pkg.Name]; ok && !prev.Equal(pkg) {
				return nil, fmt.Errorf("%w: overlay '%s' binds '%s' twice with different definitions", ErrOverlayConflict, ov.Name, pkg.Name)
			}
			seen[pkg.Name] = pkg
			merged.packages[pkg.Name] = pkg
		}
	}
	return merged, nil
}
