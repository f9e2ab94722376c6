// pkg/fetch/cache.go
package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CathalMullan/http-body/pkg/manifest"
)

// Cache lays out fetched input sources on disk, keyed by pin. The
// location of a source is a pure function of its name and pin, so
// descriptors can reference it before anything has been fetched.
type Cache struct {
	root string
}

// NewCache creates a cache rooted at the given directory. An empty
// root falls back to ~/.cache/devshell.
func NewCache(root string) *Cache {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			root = filepath.Join(os.TempDir(), "devshell")
		} else {
			root = filepath.Join(home, ".cache", "devshell")
		}
	}
	return &Cache{root: root}
}

// Root returns the cache root directory
func (c *Cache) Root() string {
	return c.root
}

// Path returns where the source for (name, pin) lives. The pin's
// abbreviated revision keys the directory, so a changed pin never
// collides with a previous fetch.
func (c *Cache) Path(name string, pin manifest.Pin) string {
	return filepath.Join(c.root, "sources", fmt.Sprintf("%s-%s", name, pin.ShortRev()))
}

// Has reports whether the source for (name, pin) is already present
func (c *Cache) Has(name string, pin manifest.Pin) bool {
	info, err := os.Stat(c.Path(name, pin))
	return err == nil && info.IsDir()
}
