package card

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CardType is a card type such as Land or Creature
type CardType string

const (
	TypeArtifact     CardType = "Artifact"
	TypeBattle       CardType = "Battle"
	TypeCreature     CardType = "Creature"
	TypeEnchantment  CardType = "Enchantment"
	TypeInstant      CardType = "Instant"
	TypeLand         CardType = "Land"
	TypePlaneswalker CardType = "Planeswalker"
	TypeSorcery      CardType = "Sorcery"
	TypeTribal       CardType = "Tribal"
)

// SuperType is a card supertype such as Basic or Legendary
type SuperType string

const (
	SuperBasic     SuperType = "Basic"
	SuperLegendary SuperType = "Legendary"
	SuperSnow      SuperType = "Snow"
	SuperWorld     SuperType = "World"
)

// Info is the read-only view of a card's static attributes, as returned
// by a card lookup
type Info struct {
	Name       string      // Card name
	SetCode    string      // Code of the set the printing belongs to
	CardNumber string      // Collector number within the set
	Rarity     string      // common, uncommon, rare, mythic, special
	Color      Color       // Color identity
	Types      []CardType  // e.g. Land, Creature
	Supertypes []SuperType // e.g. Basic, Legendary
}

// HasType reports whether the card carries the given type
func (i Info) HasType(t CardType) bool {
	for _, have := range i.Types {
		if have == t {
			return true
		}
	}
	return false
}

// HasSupertype reports whether the card carries the given supertype
func (i Info) HasSupertype(t SuperType) bool {
	for _, have := range i.Supertypes {
		if have == t {
			return true
		}
	}
	return false
}

// IsLand reports whether the card is a land
func (i Info) IsLand() bool {
	return i.HasType(TypeLand)
}

// IsBasicLand reports whether the card is a basic land
func (i Info) IsBasicLand() bool {
	return i.IsLand() && i.HasSupertype(SuperBasic)
}

// TypeLine renders supertypes and types, e.g. "Basic Land"
func (i Info) TypeLine() string {
	parts := make([]string, 0, len(i.Supertypes)+len(i.Types))
	for _, st := range i.Supertypes {
		parts = append(parts, string(st))
	}
	for _, t := range i.Types {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, " ")
}

// Card is a materialized card object handed out to a game or deck
type Card struct {
	ID uuid.UUID // Unique per instance, two draws of one printing differ
	Info
}

// Factory turns a card view into a card object
type Factory interface {
	NewCard(info Info) (*Card, error)
}

// FactoryFunc adapts a function to the Factory interface
type FactoryFunc func(info Info) (*Card, error)

// NewCard calls f(info)
func (f FactoryFunc) NewCard(info Info) (*Card, error) {
	return f(info)
}

// DefaultFactory gives every card a fresh random ID
var DefaultFactory Factory = FactoryFunc(func(info Info) (*Card, error) {
	return &Card{ID: uuid.New(), Info: info}, nil
})

// FactoryError reports that a card object could not be built
type FactoryError struct {
	Name    string
	SetCode string
	Err     error
}

func (e *FactoryError) Error() string {
	return fmt.Sprintf("create card %s (%s): %v", e.Name, e.SetCode, e.Err)
}

func (e *FactoryError) Unwrap() error {
	return e.Err
}

// NewFactoryError wraps err with the identity of the card that failed
func NewFactoryError(info Info, err error) *FactoryError {
	return &FactoryError{Name: info.Name, SetCode: info.SetCode, Err: err}
}
