// Package registry implements the session-scoped name→StructMint table that
// resolves weak named references during validation and serialization.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/unicode/norm"

	"mint/internal/mint"
)

// ConflictError reports an attempt to register a structurally different
// shape under an already-taken name.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("registry: name %q already bound to a different shape", e.Name)
}

// Registry is a session-scoped mapping from canonical names to StructMints.
// Registration is idempotent for structurally identical shapes and atomic
// with respect to the conflict check. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*mint.StructMint
}

// New returns an empty registry. Each caller session owns its own instance;
// there is no package-level table.
func New() *Registry {
	return &Registry{entries: make(map[string]*mint.StructMint)}
}

// Canonical normalizes a registry name to Unicode NFC so that visually
// identical spellings resolve to the same entry.
func Canonical(name string) string {
	return norm.NFC.String(name)
}

// Register binds name to shape. Re-registering a structurally identical
// shape is a no-op; a different shape under the same name returns
// *ConflictError and leaves the existing entry untouched.
func (r *Registry) Register(name string, shape *mint.StructMint) error {
	if shape == nil {
		return fmt.Errorf("registry: nil shape for %q", name)
	}
	key := Canonical(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.entries[key]; ok {
		if mint.Equal(prev, shape) {
			return nil
		}
		return &ConflictError{Name: key}
	}
	r.entries[key] = shape
	return nil
}

// Lookup resolves a name to its registered shape.
func (r *Registry) Lookup(name string) (*mint.StructMint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.entries[Canonical(name)]
	return m, ok
}

// Resolve follows a struct-reference tag to its registered shape.
func (r *Registry) Resolve(t mint.Type) (*mint.StructMint, bool) {
	if t.Kind != mint.KindStruct || t.Ref == "" {
		return nil, false
	}
	return r.Lookup(t.Ref)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of registered shapes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear drops every entry. Mints holding references to cleared names fail
// resolution afterwards; callers own that lifecycle.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*mint.StructMint)
}
