// pkg/platform/platform.go
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// System identifies an OS/architecture pair using the package-set
// provider's naming, e.g. "x86_64-linux".
type System string

const (
	// Linux systems
	SystemX8664Linux   System = "x86_64-linux"
	SystemAarch64Linux System = "aarch64-linux"

	// macOS systems
	SystemX8664Darwin   System = "x86_64-darwin"
	SystemAarch64Darwin System = "aarch64-darwin"
)

// defaultSystems is the provider's default system set. Environments are
// built for every member.
var defaultSystems = []System{
	SystemX8664Linux,
	SystemAarch64Linux,
	SystemX8664Darwin,
	SystemAarch64Darwin,
}

// DefaultSystems returns the set of systems environments are built for.
// The returned slice is a copy; callers may reorder it freely.
func DefaultSystems() []System {
	out := make([]System, len(defaultSystems))
	copy(out, defaultSystems)
	return out
}

// Detect automatically detects the current system
func Detect() (System, error) {
	goos := runtime.GOOS
	goarch := runtime.GOARCH

	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return SystemX8664Linux, nil
		case "arm64":
			return SystemAarch64Linux, nil
		default:
			return "", fmt.Errorf("unsupported Linux architecture: %s", goarch)
		}

	case "darwin":
		switch goarch {
		case "amd64":
			return SystemX8664Darwin, nil
		case "arm64":
			return SystemAarch64Darwin, nil
		default:
			return "", fmt.Errorf("unsupported Darwin architecture: %s", goarch)
		}

	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// String returns the string representation of the system
func (s System) String() string {
	return string(s)
}

// IsValid checks if the system is a member of the default set
func (s System) IsValid() bool {
	for _, valid := range defaultSystems {
		if s == valid {
			return true
		}
	}
	return false
}

// Arch returns the architecture half of the system pair (e.g. "x86_64")
func (s System) Arch() string {
	arch, _, ok := strings.Cut(string(s), "-")
	if !ok {
		return ""
	}
	return arch
}

// OS returns the OS half of the system pair (e.g. "linux")
func (s System) OS() string {
	_, os, ok := strings.Cut(string(s), "-")
	if !ok {
		return ""
	}
	return os
}
