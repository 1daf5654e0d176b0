package set

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ReleaseDateLayout is the layout of release dates in set definition files
const ReleaseDateLayout = "2006-01-02"

// Discoverer yields set descriptors to register
type Discoverer interface {
	Discover() ([]Descriptor, error)
}

// DiscoverFunc adapts a function to the Discoverer interface
type DiscoverFunc func() ([]Descriptor, error)

// Discover calls f()
func (f DiscoverFunc) Discover() ([]Descriptor, error) {
	return f()
}

// Constructors returns a Discoverer over a fixed list of constructors
func Constructors(ctors ...Constructor) Discoverer {
	return DiscoverFunc(func() ([]Descriptor, error) {
		out := make([]Descriptor, 0, len(ctors))
		for _, ctor := range ctors {
			out = append(out, ctor())
		}
		return out, nil
	})
}

// Load registers everything the discoverers yield, in order. It stops at
// the first discovery or registration error.
func Load(reg Registry, discoverers ...Discoverer) error {
	for _, d := range discoverers {
		descriptors, err := d.Discover()
		if err != nil {
			return fmt.Errorf("discover sets: %w", err)
		}
		for _, desc := range descriptors {
			if err := reg.Register(desc); err != nil {
				return err
			}
		}
	}
	return nil
}

// DefinitionFile is the TOML layout of a set definition file
type DefinitionFile struct {
	Set SetSection `toml:"set"`
}

// SetSection is the [set] table of a definition file
type SetSection struct {
	Code        string `toml:"code"`
	Name        string `toml:"name"`
	Type        string `toml:"type"`
	ReleaseDate string `toml:"release_date"`
	Block       string `toml:"block"`
}

// Descriptor converts the section into a descriptor. Codes are upper-cased
// to match the catalog. A missing type defaults to custom, since definition
// files describe sets outside the compiled catalog.
func (s SetSection) Descriptor() (Descriptor, error) {
	d := Descriptor{
		Code:      strings.ToUpper(strings.TrimSpace(s.Code)),
		Name:      strings.TrimSpace(s.Name),
		Type:      TypeCustom,
		BlockName: strings.TrimSpace(s.Block),
	}
	if d.Code == "" {
		return Descriptor{}, fmt.Errorf("set.code is required")
	}
	if s.Type != "" {
		t, err := ParseSetType(s.Type)
		if err != nil {
			return Descriptor{}, err
		}
		d.Type = t
	}
	if s.ReleaseDate != "" {
		released, err := time.Parse(ReleaseDateLayout, s.ReleaseDate)
		if err != nil {
			return Descriptor{}, fmt.Errorf("invalid release_date %q: %w", s.ReleaseDate, err)
		}
		d.ReleaseDate = released
	}
	return d, nil
}

// DecodeDefinitionFile reads one set definition file
func DecodeDefinitionFile(path string) (Descriptor, error) {
	var def DefinitionFile
	if _, err := toml.DecodeFile(path, &def); err != nil {
		return Descriptor{}, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
	}
	d, err := def.Set.Descriptor()
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// TOMLSource discovers sets from the *.toml definition files of a directory
type TOMLSource struct {
	Dir string
}

// Discover reads every definition file in the directory, in name order.
// A missing directory yields no sets. Files that fail to parse are skipped
// with a warning; use the validator to report them.
func (s TOMLSource) Discover() ([]Descriptor, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		slog.Debug("Set definition directory not found", "dir", s.Dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading set directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".toml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var out []Descriptor
	for _, name := range names {
		d, err := DecodeDefinitionFile(filepath.Join(s.Dir, name))
		if err != nil {
			slog.Warn("Skipping set definition", "file", name, "error", err)
			continue
		}
		out = append(out, d)
	}

	slog.Debug("Discovered set definitions", "dir", s.Dir, "count", len(out))
	return out, nil
}
