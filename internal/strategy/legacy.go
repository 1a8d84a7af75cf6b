package strategy

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

// LegacyNegativePrompt is shared by every legacy render
const LegacyNegativePrompt = "human, child, realistic skin, realistic face, plain background, random logos, " +
	"English words except VERT, photorealistic, default head, default face, default clothing, default background, " +
	"realistic limbs, children, daft punk helmet, astronaut helmet, military helmet, bare skin, real person, " +
	"shadow face, photoreal background, realistic lighting, skin texture, hair, smooth face, depth of field, " +
	"text, logos, brand names, realistic arms, fingers, helmets, motorcycle helmet, pilot helmet, round helmet, " +
	"orb helmet, sunglasses, visors, reflections, leather texture, HDR, realistic shadows, photo, photograph, " +
	"city photo, real buildings, windows, advertisements, brand logos, signs, tattoos, random words, " +
	"foreign characters, visible numbers, random patches, realistic faces, empty background, gradient backdrop, " +
	"gray backdrop, studio lighting, plain wall, photostudio, blank setting, plain t-shirt, generic shirt, " +
	"studio portrait, dull eyes, simple head, blank head, blank eyes, people, motorcycles, empty photo studio, " +
	"other text, unknown logos, English words other than 'VERT', cityscape, skyscraper, cars, crowds, " +
	"generic urban, street scene, photo background, goggles, robot eyes, robot face"

// DefaultImageSettings drive legacy generation
var DefaultImageSettings = ImageSettings{
	Model:     "bytedance/sdxl-lightning-4step:5599ed30703defd1d160a25a63321b4dec97101d98b4674bcc56e41f62f35637",
	Steps:     4,
	Guidance:  0,
	Scheduler: "DPM++ 2M SDE Karras",
}

// Legacy draws uniformly from the flattened catalog and renders a fixed
// template
type Legacy struct {
	catalog  *traits.TraitsData
	roller   dice.Roller
	settings ImageSettings
	logger   *zap.Logger
}

// LegacyConfig holds the legacy strategy dependencies
type LegacyConfig struct {
	Catalog  *traits.TraitsData
	Roller   dice.Roller
	Settings *ImageSettings
	Logger   *zap.Logger
}

// NewLegacy creates the catalog strategy
func NewLegacy(cfg *LegacyConfig) *Legacy {
	if cfg == nil {
		panic("legacy config is required")
	}
	if cfg.Catalog == nil {
		panic("trait catalog is required")
	}

	l := &Legacy{
		catalog:  cfg.Catalog,
		roller:   cfg.Roller,
		settings: DefaultImageSettings,
		logger:   cfg.Logger,
	}
	if l.roller == nil {
		l.roller = dice.NewRandomRoller()
	}
	if cfg.Settings != nil {
		l.settings = *cfg.Settings
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

func (l *Legacy) Name() Name {
	return NameLegacy
}

func (l *Legacy) Period() *artperiod.ArtPeriod {
	return nil
}

func (l *Legacy) ImageSettings() ImageSettings {
	return l.settings
}

// SelectTraits flattens each category Common through Mythical and draws a
// uniform index. Per-trait rarity metadata is not consulted.
func (l *Legacy) SelectTraits() *traits.SelectedTraits {
	selected := &traits.SelectedTraits{}

	for _, c := range traits.Categories {
		category, _ := l.catalog.Category(c)
		trait, ok := dice.Pick(l.roller, category.All())
		if !ok {
			l.logger.Warn("no traits to draw from", zap.String("category", string(c)))
			continue
		}
		selected.Set(c, &trait)
	}

	selected.Rarity = drawRarity(l.roller)

	text, ok := dice.Pick(l.roller, l.catalog.GraphicText)
	if !ok {
		text = traits.DefaultGraphicText
	}
	selected.GraphicText = &text

	return selected
}

// BuildPrompt renders the fixed template. Output depends only on the
// selection.
func (l *Legacy) BuildPrompt(selected *traits.SelectedTraits) (*PromptResult, error) {
	if err := selected.Validate(); err != nil {
		return nil, err
	}

	rarity := selected.EffectiveRarity()
	var b strings.Builder

	b.WriteString("2D digital cartoon mascot, cel-shaded, bold outlines. ")
	b.WriteString("Character must be centered, upper-body, in a consistent collection pose.\n")

	fmt.Fprintf(&b, "Background: %s. The background must be clearly visible behind the character and show this scene. "+
		"No plain backgrounds, no cityscapes, no crowds.\n", describe(selected.Background))
	fmt.Fprintf(&b, "Species: %s, %s.\n", selected.Species.Name, describe(selected.Species))
	fmt.Fprintf(&b, "Head: %s. Head must NOT be a dome, helmet, or orb. No goggles, no glass, no robot faces.\n",
		describe(selected.HeadType))
	fmt.Fprintf(&b, "Eyes: %s. Eyes must match this exactly. No blank eyes.\n", describe(selected.EyesFace))
	fmt.Fprintf(&b, "Clothing: %s. Clothing must match this exactly. No generic t-shirts, no random graphics.\n",
		describe(selected.ClothingTop))
	fmt.Fprintf(&b, "Color: %s.\n", describe(selected.CharacterColor))
	fmt.Fprintf(&b, "Rarity: %s edition with %s.\n", rarity, rarityThemes[rarity])
	fmt.Fprintf(&b, "Only visible text: '%s' in a bold, simple font as a patch or tag. No other words, letters, or logos.\n",
		selected.Text().Name)
	b.WriteString("No photorealism. No human faces or skin. No default helmets.")

	return &PromptResult{
		Prompt:         b.String(),
		NegativePrompt: LegacyNegativePrompt,
		Traits:         selected,
	}, nil
}

func describe(t *traits.Trait) string {
	if t.Description != "" {
		return t.Description
	}
	return t.Name
}
