package strategy

import (
	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

// drawRarity is shared by both strategies; periods never change the odds
func drawRarity(roller dice.Roller) traits.Rarity {
	i, err := dice.Weighted(roller, traits.RarityWeights)
	if err != nil {
		return traits.RarityCommon
	}
	return traits.RarityTiers[i]
}

var rarityThemes = map[traits.Rarity]string{
	traits.RarityCommon:    "clean flat colors with simple cel shading",
	traits.RarityRare:      "subtle metallic accents on clothing and accessories",
	traits.RarityEpic:      "glowing accent lines and a soft colored aura",
	traits.RarityLegendary: "gold trim details and a radiant rim light",
	traits.RarityMythical:  "an otherworldly glow with floating sparkles around the character",
}
