package item

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Rarity is an item quality tier. The zero value, RarityNone, means "no
// rarity" and encodes as JSON null.
type Rarity int

// Rarity tiers, highest first.
const (
	RarityNone Rarity = iota
	// Legendary is the purple tier.
	Legendary
	// Rare is the blue tier.
	Rare
	// Uncommon is the green tier.
	Uncommon
	// Common is the gray tier.
	Common
)

// ErrUnknownRarity is returned when a rarity token names no tier.
var ErrUnknownRarity = errors.New("unknown rarity")

var rarityNames = map[Rarity]string{
	Legendary: "LEGENDARY",
	Rare:      "RARE",
	Uncommon:  "UNCOMMON",
	Common:    "COMMON",
}

// Rarities returns every tier in declaration order.
func Rarities() []Rarity {
	return []Rarity{Legendary, Rare, Uncommon, Common}
}

// String returns the lowercase token for r, or "" for RarityNone.
func (r Rarity) String() string {
	return strings.ToLower(rarityNames[r])
}

// ParseRarity looks up a tier by token, ignoring case.
//
// Postcondition: returns the matching tier, or an error wrapping
// ErrUnknownRarity when token names no tier.
func ParseRarity(token string) (Rarity, error) {
	upper := strings.ToUpper(token)
	for r, name := range rarityNames {
		if name == upper {
			return r, nil
		}
	}
	return RarityNone, fmt.Errorf("%w: %q", ErrUnknownRarity, token)
}

// MarshalJSON encodes r as its lowercase token, or null for RarityNone.
func (r Rarity) MarshalJSON() ([]byte, error) {
	if r == RarityNone {
		return []byte("null"), nil
	}
	name, ok := rarityNames[r]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRarity, int(r))
	}
	return json.Marshal(strings.ToLower(name))
}

// UnmarshalJSON decodes a rarity token. A JSON string must name a tier in
// any case or decoding fails; any other JSON value decodes to RarityNone
// without error.
func (r *Rarity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*r = RarityNone
		return nil
	}
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	parsed, err := ParseRarity(token)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
