package set

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrAlreadyInitialized is returned by AddDiscoverer once Default has run
var ErrAlreadyInitialized = errors.New("default set registry already initialized")

var (
	defaultOnce     sync.Once
	defaultRegistry *SetRegistry
	defaultErr      error

	discoverersMu sync.Mutex
	discoverers   []Discoverer
	initialized   bool
)

// AddDiscoverer adds a source of sets for Default to load after the
// built-in catalog. It must be called before the first call to Default.
func AddDiscoverer(d Discoverer) error {
	discoverersMu.Lock()
	defer discoverersMu.Unlock()

	if initialized {
		return ErrAlreadyInitialized
	}
	discoverers = append(discoverers, d)
	return nil
}

// Default returns the process-wide registry. The first call builds it from
// Builtin and the added discoverers; concurrent first calls wait for that
// single build. A failed build is permanent for the process.
func Default() (*SetRegistry, error) {
	defaultOnce.Do(func() {
		discoverersMu.Lock()
		initialized = true
		sources := append([]Discoverer{Constructors(Builtin...)}, discoverers...)
		discoverersMu.Unlock()

		reg := NewRegistry()
		if err := Load(reg, sources...); err != nil {
			defaultErr = fmt.Errorf("initialize set registry: %w", err)
			return
		}
		defaultRegistry = reg

		slog.Debug("Set registry initialized",
			"sets", reg.Len(),
			"custom", len(reg.CustomCodes()))
	})
	return defaultRegistry, defaultErr
}

// FindSet returns the set registered under code in the default registry,
// or nil when the code is unknown or the registry failed to initialize.
func FindSet(code string) *Descriptor {
	reg, err := Default()
	if err != nil {
		return nil
	}
	d, ok := reg.Lookup(code)
	if !ok {
		return nil
	}
	return &d
}
