package traits

import (
	"strings"

	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

// SelectedTraits is one trait per category plus the overall rarity.
// A fresh value is produced per mint and owned by the caller.
type SelectedTraits struct {
	HeadType       *Trait `json:"HeadType,omitempty"`
	EyesFace       *Trait `json:"EyesFace,omitempty"`
	ClothingTop    *Trait `json:"ClothingTop,omitempty"`
	CharacterColor *Trait `json:"CharacterColor,omitempty"`
	Species        *Trait `json:"Species,omitempty"`
	Background     *Trait `json:"Background,omitempty"`
	Rarity         Rarity `json:"rarity"`
	GraphicText    *Trait `json:"GraphicText,omitempty"`
}

// Get returns the trait chosen for a category, nil when unassigned
func (s *SelectedTraits) Get(c Category) *Trait {
	switch c {
	case CategoryHeadType:
		return s.HeadType
	case CategoryEyesFace:
		return s.EyesFace
	case CategoryClothingTop:
		return s.ClothingTop
	case CategoryCharacterColor:
		return s.CharacterColor
	case CategorySpecies:
		return s.Species
	case CategoryBackground:
		return s.Background
	default:
		return nil
	}
}

// Set assigns a trait to a category. Unknown categories are ignored.
func (s *SelectedTraits) Set(c Category, t *Trait) {
	switch c {
	case CategoryHeadType:
		s.HeadType = t
	case CategoryEyesFace:
		s.EyesFace = t
	case CategoryClothingTop:
		s.ClothingTop = t
	case CategoryCharacterColor:
		s.CharacterColor = t
	case CategorySpecies:
		s.Species = t
	case CategoryBackground:
		s.Background = t
	}
}

// Missing lists the categories without a trait, in render order
func (s *SelectedTraits) Missing() []Category {
	var missing []Category
	for _, c := range Categories {
		if t := s.Get(c); t == nil || t.Name == "" {
			missing = append(missing, c)
		}
	}
	return missing
}

// Validate fails when a category is missing or the rarity is unknown.
// An empty rarity is allowed and treated as Common downstream.
func (s *SelectedTraits) Validate() error {
	if s == nil {
		return errors.Validation("traits are required")
	}

	if missing := s.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = string(c)
		}
		return errors.Validationf("missing required traits: %s", strings.Join(names, ", ")).
			WithMeta("missing", names)
	}

	if s.Rarity != "" && !s.Rarity.IsValid() {
		return errors.Validationf("unknown rarity %q", s.Rarity)
	}

	return nil
}

// EffectiveRarity returns the rarity, defaulting to Common
func (s *SelectedTraits) EffectiveRarity() Rarity {
	if s.Rarity == "" {
		return RarityCommon
	}
	return s.Rarity
}

// Text returns the graphic text trait or the default VERT patch
func (s *SelectedTraits) Text() Trait {
	if s.GraphicText != nil && s.GraphicText.Name != "" {
		return *s.GraphicText
	}
	return DefaultGraphicText
}
