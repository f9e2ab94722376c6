// pkg/manifest/input.go
package manifest

import "fmt"

// Kind selects how an input's source is retrieved
type Kind string

const (
	// KindGitHub fetches a GitHub repository at a pinned revision
	KindGitHub Kind = "github"
	// KindTarball fetches an xz-compressed tarball from a URL
	KindTarball Kind = "tarball"
	// KindNar fetches an xz-compressed NAR archive from a URL
	KindNar Kind = "nar"
)

// Input is one declared external source. Only the lock file fixes it to
// an exact value; the input itself names a rolling channel or branch.
type Input struct {
	Kind  Kind   `toml:"kind"`
	Owner string `toml:"owner,omitempty"`
	Repo  string `toml:"repo,omitempty"`
	Ref   string `toml:"ref,omitempty"`
	URL   string `toml:"url,omitempty"`

	// Follows redirects one of this input's own inputs to a top-level
	// input, so both resolve to the identical pinned snapshot instead
	// of divergent duplicates.
	Follows map[string]string `toml:"follows,omitempty"`
}

// CloneURL returns the git URL for a github-kind input
func (in Input) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", in.Owner, in.Repo)
}
