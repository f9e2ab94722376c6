// pkg/fetch/fetcher.go
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/CathalMullan/http-body/pkg/manifest"
)

// ErrHashMismatch indicates a fetched source failed verification
// against its pin.
var ErrHashMismatch = errors.New("hash mismatch")

// Config configures a Fetcher
type Config struct {
	Timeout time.Duration
	Logger  *log.Logger
}

// Fetcher retrieves pinned input sources into the cache. Retrieval is
// one-time per pin: a cache hit short-circuits, so repeated
// evaluations with the same pin never re-fetch.
type Fetcher struct {
	cache  *Cache
	client *Client
	logger *log.Logger
}

// NewFetcher creates a fetcher backed by the given cache
func NewFetcher(cache *Cache, cfg *Config) *Fetcher {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Fetcher{
		cache:  cache,
		client: NewClientWithTimeout(cfg.Timeout),
		logger: logger,
	}
}

// Fetch ensures the source for (name, input, pin) is present in the
// cache and returns its path.
func (f *Fetcher) Fetch(ctx context.Context, name string, input manifest.Input, pin manifest.Pin) (string, error) {
	dest := f.cache.Path(name, pin)

	if f.cache.Has(name, pin) {
		f.logger.Printf("Source '%s' already present at %s", name, dest)
		return dest, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	// Fetch into a staging directory and rename into place, so a
	// partial fetch never looks like a cache hit.
	staging, err := os.MkdirTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	switch input.Kind {
	case manifest.KindGitHub:
		err = f.fetchGit(ctx, input, pin, staging)
	case manifest.KindTarball:
		err = f.fetchTarball(ctx, input.URL, staging)
	case manifest.KindNar:
		err = f.fetchNar(ctx, input.URL, pin, staging)
	default:
		err = fmt.Errorf("unknown input kind '%s'", input.Kind)
	}
	if err != nil {
		return "", fmt.Errorf("fetching '%s': %w", name, err)
	}

	if err := os.Rename(staging, dest); err != nil {
		return "", fmt.Errorf("installing source: %w", err)
	}

	f.logger.Printf("✓ Fetched '%s' at %s into %s", name, pin.ShortRev(), dest)
	return dest, nil
}

// fetchGit clones the repository and checks out the pinned revision.
// The revision itself is the content pin, so no separate hash
// verification runs here.
func (f *Fetcher) fetchGit(ctx context.Context, input manifest.Input, pin manifest.Pin, dest string) error {
	url := input.CloneURL()
	f.logger.Printf("Cloning %s at %s...", url, pin.ShortRev())

	repo, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL: url,
	})
	if err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}

	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash: plumbing.NewHash(pin.Rev),
	}); err != nil {
		return fmt.Errorf("checking out %s: %w", pin.Rev, err)
	}

	// The snapshot is the source tree alone.
	return os.RemoveAll(filepath.Join(dest, ".git"))
}

// fetchTarball downloads an xz-compressed tarball and unpacks it,
// stripping the single top-level directory the archive wraps the tree
// in.
func (f *Fetcher) fetchTarball(ctx context.Context, url, dest string) error {
	f.logger.Printf("Downloading tarball from %s...", url)

	archive, err := f.download(ctx, url, "source-*.tar.xz")
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	return extractTarXZ(archive, dest)
}

// fetchNar downloads an xz-compressed NAR archive, verifies it against
// the pin's NAR hash, and unpacks it.
func (f *Fetcher) fetchNar(ctx context.Context, url string, pin manifest.Pin, dest string) error {
	f.logger.Printf("Downloading NAR from %s...", url)

	archive, err := f.download(ctx, url, "source-*.nar.xz")
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	narPath, err := decompressXZ(archive)
	if err != nil {
		return err
	}
	defer os.Remove(narPath)

	if pin.NarHash != "" {
		if err := verifyNarHash(narPath, pin.NarHash); err != nil {
			return err
		}
		f.logger.Printf("  ✓ NAR hash verified")
	}

	return extractNar(narPath, dest)
}

// download fetches a URL into a temp file and returns its path
func (f *Fetcher) download(ctx context.Context, url, pattern string) (string, error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if err := f.client.Download(ctx, url, tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("downloading: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
