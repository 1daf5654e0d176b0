package set

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDuplicateCode is returned when a set code is registered twice
	ErrDuplicateCode = errors.New("set code already registered")
	// ErrInvalidCode is returned for descriptors without a usable code
	ErrInvalidCode = errors.New("invalid set code")
)

// Registry is the capability to add and resolve sets by code
type Registry interface {
	// Register adds d under d.Code. It fails with ErrDuplicateCode if the
	// code is taken, in which case the registry is unchanged.
	Register(d Descriptor) error
	// Lookup returns the set registered under code
	Lookup(code string) (Descriptor, bool)
}

// SetRegistry is the in-memory Registry.
//
// Lookups and the other read accessors may be called from any number of
// goroutines. Register is meant for the population phase; callers that
// register after a registry has been shared must coordinate that themselves.
type SetRegistry struct {
	mu     sync.RWMutex // Protects sets, custom
	sets   map[string]Descriptor
	custom map[string]struct{}
}

var _ Registry = (*SetRegistry)(nil)

// NewRegistry creates an empty registry
func NewRegistry() *SetRegistry {
	return &SetRegistry{
		sets:   make(map[string]Descriptor),
		custom: make(map[string]struct{}),
	}
}

// Init creates a registry holding the set built by each constructor, in
// order. The first duplicate code aborts initialization.
func Init(ctors ...Constructor) (*SetRegistry, error) {
	r := NewRegistry()
	for _, ctor := range ctors {
		if err := r.Register(ctor()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds d under d.Code
func (r *SetRegistry) Register(d Descriptor) error {
	if strings.TrimSpace(d.Code) == "" || d.Code != strings.TrimSpace(d.Code) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, d.Code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sets[d.Code]; ok {
		return fmt.Errorf("%w: %s is already used by %s", ErrDuplicateCode, d.Code, existing)
	}
	r.sets[d.Code] = d
	if d.IsCustom() {
		r.custom[d.Code] = struct{}{}
	}

	slog.Debug("Registered set", "code", d.Code, "name", d.Name, "type", d.Type)
	return nil
}

// Lookup returns the set registered under code
func (r *SetRegistry) Lookup(code string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.sets[code]
	return d, ok
}

// IsCustom reports whether code is registered and flagged custom
func (r *SetRegistry) IsCustom(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.custom[code]
	return ok
}

// Len returns the number of registered sets
func (r *SetRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}

// Codes returns all registered codes, sorted
func (r *SetRegistry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.sets)
}

// CustomCodes returns the codes of the registered custom sets, sorted
func (r *SetRegistry) CustomCodes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.custom)
}

// Descriptors returns every registered set ordered by release date, then code
func (r *SetRegistry) Descriptors() []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.sets))
	for _, d := range r.sets {
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReleaseDate.Equal(out[j].ReleaseDate) {
			return out[i].ReleaseDate.Before(out[j].ReleaseDate)
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
