package nft

import (
	"fmt"

	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

const (
	// NamePrefix is followed by the token id
	NamePrefix = "Vertical Project #"

	DefaultDescription = "An AI-generated Vertical character."

	// TraitTypeRarity is always the first attribute
	TraitTypeRarity = "rarity"
)

// Attribute is an ERC-721 metadata attribute
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata is the JSON document pinned for each token
type TokenMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// NewTokenMetadata builds the metadata for a token. The rarity attribute
// comes first, followed by one attribute per assigned category.
func NewTokenMetadata(tokenID uint64, imageURI string, selected *traits.SelectedTraits) *TokenMetadata {
	meta := &TokenMetadata{
		Name:        fmt.Sprintf("%s%d", NamePrefix, tokenID),
		Description: DefaultDescription,
		Image:       imageURI,
		Attributes:  make([]Attribute, 0, len(traits.Categories)+1),
	}

	meta.Attributes = append(meta.Attributes, Attribute{
		TraitType: TraitTypeRarity,
		Value:     selected.EffectiveRarity().String(),
	})

	for _, c := range traits.Categories {
		if t := selected.Get(c); t != nil {
			meta.Attributes = append(meta.Attributes, Attribute{TraitType: string(c), Value: t.Name})
		}
	}

	return meta
}

// FileName is the metadata file name inside the pinned folder
func FileName(tokenID uint64) string {
	return fmt.Sprintf("%d.json", tokenID)
}
