// pkg/pkgset/errors.go
package pkgset

import "errors"

var (
	// ErrUnsupportedPlatform indicates the system is not known to the base package collection
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrOverlayConflict indicates one overlay produced incompatible definitions for a package name
	ErrOverlayConflict = errors.New("overlay conflict")

	// ErrPackageNotFound indicates a literally named package is absent from the snapshot
	ErrPackageNotFound = errors.New("package not found")
)
