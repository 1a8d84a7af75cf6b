package traits

// Rarity is the overall tier assigned to a mint
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythical  Rarity = "Mythical"
)

// RarityTiers lists the tiers from most to least common.
// RarityWeights is index-aligned with it and sums to 100.
var (
	RarityTiers   = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythical}
	RarityWeights = []float64{70, 18.75, 9, 1.875, 0.375}
)

// IsValid reports whether r is one of the five tiers
func (r Rarity) IsValid() bool {
	for _, tier := range RarityTiers {
		if r == tier {
			return true
		}
	}
	return false
}

func (r Rarity) String() string {
	return string(r)
}
