// errors.go
package devenv

import (
	"fmt"

	"github.com/CathalMullan/http-body/pkg/fetch"
	"github.com/CathalMullan/http-body/pkg/manifest"
	"github.com/CathalMullan/http-body/pkg/pkgset"
)

// Re-export the error taxonomy for convenience
var (
	// ErrUnsupportedPlatform indicates the system is not known to the base package collection
	ErrUnsupportedPlatform = pkgset.ErrUnsupportedPlatform

	// ErrOverlayConflict indicates an overlay produced incompatible definitions for a package name
	ErrOverlayConflict = pkgset.ErrOverlayConflict

	// ErrPackageNotFound indicates a literally named package is absent from the snapshot
	ErrPackageNotFound = pkgset.ErrPackageNotFound

	// ErrPinMissing indicates a declared input has no entry in the lock file
	ErrPinMissing = manifest.ErrPinMissing

	// ErrHashMismatch indicates a fetched source failed verification against its pin
	ErrHashMismatch = fetch.ErrHashMismatch
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	System  string // System identifier if applicable
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	switch {
	case e.System != "" && e.Package != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Package, e.System, e.Err)
	case e.System != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.System, e.Err)
	case e.Package != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
