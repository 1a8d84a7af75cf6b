package nft_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/vertical-mint/internal/domain/nft"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

func TestNewTokenMetadata(t *testing.T) {
	sel := &traits.SelectedTraits{
		HeadType:       &traits.Trait{Name: "Round"},
		EyesFace:       &traits.Trait{Name: "Wide"},
		ClothingTop:    &traits.Trait{Name: "Hoodie"},
		CharacterColor: &traits.Trait{Name: "Teal"},
		Species:        &traits.Trait{Name: "Robot"},
		Background:     &traits.Trait{Name: "City"},
		Rarity:         traits.RarityRare,
	}

	meta := nft.NewTokenMetadata(1, "ipfs://bafyimage", sel)

	assert.Equal(t, "Vertical Project #1", meta.Name)
	assert.Equal(t, nft.DefaultDescription, meta.Description)
	assert.Equal(t, "ipfs://bafyimage", meta.Image)
	require.Len(t, meta.Attributes, 7)
	assert.Equal(t, nft.Attribute{TraitType: "rarity", Value: "Rare"}, meta.Attributes[0])
	assert.Equal(t, nft.Attribute{TraitType: "Species", Value: "Robot"}, meta.Attributes[1])
	assert.Equal(t, nft.Attribute{TraitType: "Background", Value: "City"}, meta.Attributes[6])

	raw, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"attributes":[{"trait_type":"rarity","value":"Rare"}`)
}

func TestNewTokenMetadata_DefaultsToCommon(t *testing.T) {
	meta := nft.NewTokenMetadata(7, "ipfs://x", &traits.SelectedTraits{})
	require.Len(t, meta.Attributes, 1)
	assert.Equal(t, "Common", meta.Attributes[0].Value)
	assert.Equal(t, "7.json", nft.FileName(7))
}
