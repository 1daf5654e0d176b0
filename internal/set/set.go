// Package set keeps the registry of card sets known to the process.
//
// A set is identified by its short code ("M10", "LEA"). Codes are unique for
// the life of a registry: registering a second set under a known code fails
// and leaves the registry untouched. Sets classified as custom (not part of
// the printed catalog) are tracked separately so callers can list them.
//
// Registries are built explicitly with Init from a list of constructors, or
// lazily through Default, which assembles the built-in catalog plus any
// registered discoverers exactly once.
package set

import (
	"fmt"
	"strings"
	"time"
)

// SetType classifies a set
type SetType string

const (
	TypeCore                      SetType = "core"
	TypeExpansion                 SetType = "expansion"
	TypeSupplemental              SetType = "supplemental"
	TypeSupplementalStandardLegal SetType = "supplemental_standard_legal"
	TypePromotional               SetType = "promotional"
	TypeJokeSet                   SetType = "joke"
	TypeCustom                    SetType = "custom"
)

var knownTypes = map[SetType]struct{}{
	TypeCore:                      {},
	TypeExpansion:                 {},
	TypeSupplemental:              {},
	TypeSupplementalStandardLegal: {},
	TypePromotional:               {},
	TypeJokeSet:                   {},
	TypeCustom:                    {},
}

// IsCustom reports whether sets of this type are non-canonical
func (t SetType) IsCustom() bool {
	return t == TypeCustom
}

// IsValid reports whether t is one of the known classifications
func (t SetType) IsValid() bool {
	_, ok := knownTypes[t]
	return ok
}

// ParseSetType parses a classification name, case-insensitively
func ParseSetType(s string) (SetType, error) {
	t := SetType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown set type: %q", s)
	}
	return t, nil
}

// Descriptor describes a card set. It is a value and never changes after
// construction.
type Descriptor struct {
	Code        string
	Name        string
	Type        SetType
	ReleaseDate time.Time
	BlockName   string
}

// IsCustom reports whether the set is non-canonical
func (d Descriptor) IsCustom() bool {
	return d.Type.IsCustom()
}

// String returns "Name (CODE)"
func (d Descriptor) String() string {
	if d.Name == "" {
		return d.Code
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Code)
}

// Constructor builds one set descriptor
type Constructor func() Descriptor

// date is a helper for the built-in catalog
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
