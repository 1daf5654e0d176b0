package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arcanaland/cardpool/internal/card"
)

// DeckFile represents the top-level YAML structure of a deck file
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file
type DeckEntry struct {
	Name   string      `yaml:"name"`
	Colors string      `yaml:"colors,omitempty"`
	Seed   uint64      `yaml:"seed,omitempty"`
	Cards  []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck
type CardEntry struct {
	Name  string `yaml:"name"`
	Set   string `yaml:"set"`
	Count int    `yaml:"count"`
}

// FromPool groups a generated pool into a deck entry. Cards keep the order
// in which each printing was first drawn.
func FromPool(name string, pool []*card.Card) DeckEntry {
	entry := DeckEntry{Name: name}
	index := make(map[string]int)

	var colors card.Color
	for _, c := range pool {
		colors |= c.Color
		key := c.SetCode + "\x00" + c.Name
		if i, ok := index[key]; ok {
			entry.Cards[i].Count++
			continue
		}
		index[key] = len(entry.Cards)
		entry.Cards = append(entry.Cards, CardEntry{Name: c.Name, Set: c.SetCode, Count: 1})
	}
	if len(pool) > 0 {
		entry.Colors = colors.String()
	}
	return entry
}

// Size returns the number of cards in the deck
func (e DeckEntry) Size() int {
	n := 0
	for _, c := range e.Cards {
		n += c.Count
	}
	return n
}

// ParseDeckFile reads a deck file
func ParseDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &df, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file
func DeckByNumber(path string, n int) (DeckEntry, error) {
	df, err := ParseDeckFile(path)
	if err != nil {
		return DeckEntry{}, err
	}
	if n < 1 || n > len(df.Decks) {
		return DeckEntry{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	return df.Decks[n-1], nil
}

// AppendDecks adds decks to the deck file at path, creating it and its
// directory if needed. A deck whose name is already in the file replaces
// the existing one.
func AppendDecks(path string, decks ...DeckEntry) error {
	df := &DeckFile{}
	if _, err := os.Stat(path); err == nil {
		df, err = ParseDeckFile(path)
		if err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error reading deck file: %w", err)
	}

	for _, d := range decks {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("deck name is required")
		}
		replaced := false
		for i := range df.Decks {
			if df.Decks[i].Name == d.Name {
				df.Decks[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			df.Decks = append(df.Decks, d)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating deck directory: %w", err)
	}

	data, err := yaml.Marshal(df)
	if err != nil {
		return fmt.Errorf("encode deck YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing deck file: %w", err)
	}
	return nil
}
