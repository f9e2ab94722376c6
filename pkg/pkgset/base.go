// pkg/pkgset/base.go
package pkgset

// catalogEntry is one package known to the base collection at the
// pinned revision.
type catalogEntry struct {
	name        string
	version     string
	description string
}

// baseCatalog is the slice of the pinned base collection this
// environment draws from. Versions track the pinned revision, not any
// live channel.
var baseCatalog = []catalogEntry{
	{"taplo", "0.9.3", "TOML toolkit: formatter, linter and language server"},
	{"nixfmt-rfc-style", "0.6.0", "Official formatter for Nix code, RFC 166 style"},
	{"nixd", "2.6.1", "Nix language server based on the official libraries"},
	{"nil", "2023-08-09", "Incremental analysis assistant for the Nix language"},
	{"git", "2.47.1", "Distributed version control system"},
	{"jq", "1.7.1", "Lightweight and flexible command-line JSON processor"},
}
