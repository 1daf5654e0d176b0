package repository

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arcanaland/cardpool/internal/card"
)

// CardFile is the top-level YAML structure of a card import file.
type CardFile struct {
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is a single card in an import file.
type CardEntry struct {
	Name       string   `yaml:"name"`
	Set        string   `yaml:"set"`
	Number     string   `yaml:"number"`
	Rarity     string   `yaml:"rarity"`
	Color      string   `yaml:"color"`
	Types      []string `yaml:"types"`
	Supertypes []string `yaml:"supertypes"`
}

// Info converts the entry into a card view.
func (e CardEntry) Info() (card.Info, error) {
	if strings.TrimSpace(e.Name) == "" {
		return card.Info{}, fmt.Errorf("card name is required")
	}
	if strings.TrimSpace(e.Set) == "" {
		return card.Info{}, fmt.Errorf("%s: set is required", e.Name)
	}
	color, err := card.ParseColor(e.Color)
	if err != nil {
		return card.Info{}, fmt.Errorf("%s: %w", e.Name, err)
	}

	info := card.Info{
		Name:       strings.TrimSpace(e.Name),
		SetCode:    strings.ToUpper(strings.TrimSpace(e.Set)),
		CardNumber: e.Number,
		Rarity:     strings.ToLower(e.Rarity),
		Color:      color,
	}
	for _, t := range e.Types {
		info.Types = append(info.Types, card.CardType(strings.TrimSpace(t)))
	}
	for _, st := range e.Supertypes {
		info.Supertypes = append(info.Supertypes, card.SuperType(strings.TrimSpace(st)))
	}
	return info, nil
}

// ParseCardFile parses a YAML card import file.
func ParseCardFile(path string) ([]card.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeCards(data)
}

// DecodeCards decodes the YAML card list in data.
func DecodeCards(data []byte) ([]card.Info, error) {
	var cf CardFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}

	cards := make([]card.Info, 0, len(cf.Cards))
	for i, entry := range cf.Cards {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, info)
	}
	return cards, nil
}
