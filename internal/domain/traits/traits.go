package traits

// Category names a trait slot on a character
type Category string

const (
	CategoryHeadType       Category = "HeadType"
	CategoryEyesFace       Category = "EyesFace"
	CategoryClothingTop    Category = "ClothingTop"
	CategoryCharacterColor Category = "CharacterColor"
	CategorySpecies        Category = "Species"
	CategoryBackground     Category = "Background"
)

// Categories is the fixed render and attribute order
var Categories = []Category{
	CategorySpecies,
	CategoryHeadType,
	CategoryEyesFace,
	CategoryClothingTop,
	CategoryCharacterColor,
	CategoryBackground,
}

// Trait is an immutable catalog entry
type Trait struct {
	Name               string `json:"name" yaml:"name" validate:"required"`
	Description        string `json:"description" yaml:"description" validate:"required"`
	CompatibilityNotes string `json:"compatibility_notes,omitempty" yaml:"compatibility_notes,omitempty"`

	// Rarity is informational only and does not affect selection
	Rarity string `json:"rarity,omitempty" yaml:"rarity,omitempty"`
}

// DefaultGraphicText is used when the catalog has no GraphicText entries
var DefaultGraphicText = Trait{
	Name:        "VERT",
	Description: "VERT text in bold, simple font as a patch or tag",
}

// TraitCategory holds the traits of one category split by tier.
// Every tier must be present, an empty list is fine.
type TraitCategory struct {
	Common    []Trait `json:"Common" yaml:"Common" validate:"required,dive"`
	Rare      []Trait `json:"Rare" yaml:"Rare" validate:"required,dive"`
	Epic      []Trait `json:"Epic" yaml:"Epic" validate:"required,dive"`
	Legendary []Trait `json:"Legendary" yaml:"Legendary" validate:"required,dive"`
	Mythical  []Trait `json:"Mythical" yaml:"Mythical" validate:"required,dive"`
}

// Tier returns the traits of a single tier
func (c *TraitCategory) Tier(r Rarity) []Trait {
	switch r {
	case RarityCommon:
		return c.Common
	case RarityRare:
		return c.Rare
	case RarityEpic:
		return c.Epic
	case RarityLegendary:
		return c.Legendary
	case RarityMythical:
		return c.Mythical
	default:
		return nil
	}
}

// All flattens the tiers Common through Mythical
func (c *TraitCategory) All() []Trait {
	all := make([]Trait, 0, len(c.Common)+len(c.Rare)+len(c.Epic)+len(c.Legendary)+len(c.Mythical))
	for _, r := range RarityTiers {
		all = append(all, c.Tier(r)...)
	}
	return all
}

// TraitsData is the whole catalog. It is loaded once and never mutated.
type TraitsData struct {
	HeadType       TraitCategory `json:"HeadType" yaml:"HeadType"`
	EyesFace       TraitCategory `json:"EyesFace" yaml:"EyesFace"`
	ClothingTop    TraitCategory `json:"ClothingTop" yaml:"ClothingTop"`
	CharacterColor TraitCategory `json:"CharacterColor" yaml:"CharacterColor"`
	Species        TraitCategory `json:"Species" yaml:"Species"`
	Background     TraitCategory `json:"Background" yaml:"Background"`
	GraphicText    []Trait       `json:"GraphicText,omitempty" yaml:"GraphicText,omitempty" validate:"omitempty,dive"`
}

// Category returns the tiers for a category name
func (d *TraitsData) Category(c Category) (*TraitCategory, bool) {
	switch c {
	case CategoryHeadType:
		return &d.HeadType, true
	case CategoryEyesFace:
		return &d.EyesFace, true
	case CategoryClothingTop:
		return &d.ClothingTop, true
	case CategoryCharacterColor:
		return &d.CharacterColor, true
	case CategorySpecies:
		return &d.Species, true
	case CategoryBackground:
		return &d.Background, true
	default:
		return nil, false
	}
}
