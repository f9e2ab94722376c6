// pkg/manifest/manifest.go
package manifest

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// ToolchainSpec is the pinned toolchain selection as declared in the
// manifest: a (channel, version, profile, components) tuple. The version
// is a literal string and is never resolved dynamically.
type ToolchainSpec struct {
	Channel    string   `toml:"channel"`
	Version    string   `toml:"version"`
	Profile    string   `toml:"profile"`
	Components []string `toml:"components"`
}

// Manifest declares one development environment: its inputs, the pinned
// toolchain, and the auxiliary packages pulled in alongside it.
type Manifest struct {
	Name      string            `toml:"name"`
	Inputs    map[string]Input  `toml:"inputs"`
	Toolchain ToolchainSpec     `toml:"toolchain"`
	Packages  []string          `toml:"packages"`
	Env       map[string]string `toml:"env"`
}

// DefaultManifestPath is where the manifest lives relative to the
// repository root.
const DefaultManifestPath = "devshell.toml"

// Default returns the built-in http-body environment declaration. A
// devshell.toml on disk overrides it entirely.
func Default() *Manifest {
	return &Manifest{
		Name: "default",
		Inputs: map[string]Input{
			"nixpkgs": {
				Kind:  KindGitHub,
				Owner: "NixOS",
				Repo:  "nixpkgs",
				Ref:   "nixpkgs-unstable",
			},
			"rust-overlay": {
				Kind:    KindGitHub,
				Owner:   "oxalica",
				Repo:    "rust-overlay",
				Follows: map[string]string{"nixpkgs": "nixpkgs"},
			},
		},
		Toolchain: ToolchainSpec{
			Channel: "stable",
			Version: "1.84.0",
			Profile: "minimal",
			Components: []string{
				"clippy",
				"rust-analyzer",
				"rust-docs",
				"rust-src",
				"rustfmt",
			},
		},
		Packages: []string{
			"taplo",
			"nixfmt-rfc-style",
			"nixd",
			"nil",
		},
		Env: map[string]string{},
	}
}

// Load reads and parses a manifest file. A missing file is not an
// error: the built-in declaration is returned instead.
func Load(path string) (*Manifest, error) {
	if path == "" {
		path = DefaultManifestPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("parsing manifest '%s': %w", path, err)
	}

	if m.Name == "" {
		m.Name = "default"
	}
	if m.Env == nil {
		m.Env = map[string]string{}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the declaration for static mistakes: missing inputs,
// dangling follows targets, and an unpinned toolchain version.
func (m *Manifest) Validate() error {
	if _, ok := m.Inputs["nixpkgs"]; !ok {
		return fmt.Errorf("manifest: missing required input 'nixpkgs'")
	}

	for name, input := range m.Inputs {
		for nested, target := range input.Follows {
			if _, ok := m.Inputs[target]; !ok {
				return fmt.Errorf("manifest: input '%s' follows '%s' for '%s', which is not declared", name, target, nested)
			}
		}
	}

	if m.Toolchain.Version == "" {
		return fmt.Errorf("manifest: toolchain version must be pinned to a literal version string")
	}
	if m.Toolchain.Channel == "" {
		return fmt.Errorf("manifest: toolchain channel is required")
	}

	return nil
}

// InputNames returns the declared input names in sorted order
func (m *Manifest) InputNames() []string {
	names := make([]string, 0, len(m.Inputs))
	for name := range m.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
