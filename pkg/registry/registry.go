// pkg/registry/registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/CathalMullan/http-body/pkg/platform"
	"github.com/CathalMullan/http-body/pkg/shell"
)

// Entry is one platform's result for one environment name. Entries are
// total: a failed build carries its error here instead of being
// silently omitted, so consumers can report per-platform failures.
type Entry struct {
	System     platform.System
	Name       string
	Descriptor *shell.Descriptor
	Err        error
}

// Registry maps system → environment name → entry. It is built once
// and read-only afterwards.
type Registry struct {
	entries map[platform.System]map[string]Entry
}

// BuildFunc produces the descriptor for one system
type BuildFunc func(platform.System) (*shell.Descriptor, error)

// Build evaluates every system independently and aggregates the
// results. Systems share no mutable state, so they are evaluated
// concurrently; one system's failure never blocks another's
// resolution. Every listed system gets an entry.
func Build(systems []platform.System, name string, build BuildFunc) *Registry {
	reg := &Registry{
		entries: make(map[platform.System]map[string]Entry, len(systems)),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, system := range systems {
		system := system
		wg.Add(1)
		go func() {
			defer wg.Done()

			desc, err := build(system)
			entry := Entry{
				System:     system,
				Name:       name,
				Descriptor: desc,
				Err:        err,
			}

			mu.Lock()
			defer mu.Unlock()
			if reg.entries[system] == nil {
				reg.entries[system] = make(map[string]Entry, 1)
			}
			reg.entries[system][name] = entry
		}()
	}

	wg.Wait()
	return reg
}

// Systems returns every system with entries, in sorted order
func (r *Registry) Systems() []platform.System {
	systems := make([]platform.System, 0, len(r.entries))
	for system := range r.entries {
		systems = append(systems, system)
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i] < systems[j] })
	return systems
}

// Entry returns one platform's entry for an environment name
func (r *Registry) Entry(system platform.System, name string) (Entry, error) {
	shells, ok := r.entries[system]
	if !ok {
		return Entry{}, fmt.Errorf("registry: no entries for system '%s'", system)
	}
	entry, ok := shells[name]
	if !ok {
		return Entry{}, fmt.Errorf("registry: no shell named '%s' for system '%s'", name, system)
	}
	return entry, nil
}

// Shells returns all entries for one system, keyed by environment name
func (r *Registry) Shells(system platform.System) map[string]Entry {
	out := make(map[string]Entry, len(r.entries[system]))
	for name, entry := range r.entries[system] {
		out[name] = entry
	}
	return out
}

// Names returns the environment names present for a system, sorted
func (r *Registry) Names(system platform.System) []string {
	names := make([]string, 0, len(r.entries[system]))
	for name := range r.entries[system] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
