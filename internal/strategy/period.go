package strategy

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

// Period draws from an art period's weighted pools. Rendering re-draws a
// fragment per category on every call, so two renders of the same
// selection usually differ.
type Period struct {
	period *artperiod.ArtPeriod
	roller dice.Roller
	logger *zap.Logger
}

// NewPeriod creates a strategy bound to a copy of period
func NewPeriod(period *artperiod.ArtPeriod, roller dice.Roller, logger *zap.Logger) *Period {
	if period == nil {
		panic("art period is required")
	}
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Period{
		period: period.Clone(),
		roller: roller,
		logger: logger.With(zap.String("period_id", period.ID)),
	}
}

func (p *Period) Name() Name {
	return NamePeriod
}

func (p *Period) Period() *artperiod.ArtPeriod {
	return p.period.Clone()
}

func (p *Period) ImageSettings() ImageSettings {
	model := p.period.Model
	return ImageSettings{
		Model:     model.ReplicateModel,
		Steps:     model.Settings.Steps,
		Guidance:  model.Settings.Guidance,
		Scheduler: model.Settings.Scheduler,
	}
}

// SelectTraits draws one pool entry per category by weight. The trait
// description is one of the entry's prompt fragments.
func (p *Period) SelectTraits() *traits.SelectedTraits {
	selected := &traits.SelectedTraits{}

	for _, c := range traits.Categories {
		entry, ok := p.drawEntry(c)
		if !ok {
			p.logger.Warn("no pool entries to draw from", zap.String("category", string(c)))
			continue
		}
		fragment, ok := dice.Pick(p.roller, entry.Prompts)
		if !ok {
			fragment = entry.Name
		}
		selected.Set(c, &traits.Trait{Name: entry.Name, Description: fragment})
	}

	selected.Rarity = drawRarity(p.roller)

	return selected
}

func (p *Period) drawEntry(c traits.Category) (artperiod.PoolEntry, bool) {
	pool := p.period.Pool(c)
	weights := make([]float64, len(pool))
	for i, e := range pool {
		weights[i] = e.Weight
	}

	i, err := dice.Weighted(p.roller, weights)
	if err != nil {
		return artperiod.PoolEntry{}, false
	}
	return pool[i], true
}

// BuildPrompt joins base, per-category, style and text fragments
func (p *Period) BuildPrompt(selected *traits.SelectedTraits) (*PromptResult, error) {
	if err := selected.Validate(); err != nil {
		return nil, err
	}

	base := p.period.BasePrompts
	fragments := make([]string, 0, len(base.Positive)+len(traits.Categories)+len(base.Style)+1)
	fragments = append(fragments, base.Positive...)

	for _, c := range traits.Categories {
		fragments = append(fragments, p.fragment(c, selected.Get(c)))
	}

	fragments = append(fragments, base.Style...)
	fragments = append(fragments, fmt.Sprintf("'%s' text as a patch or tag", selected.Text().Name))

	negative := strings.Join(base.Negative, ", ")
	if negative == "" {
		negative = LegacyNegativePrompt
	}

	return &PromptResult{
		Prompt:         strings.Join(fragments, ", "),
		NegativePrompt: negative,
		Traits:         selected,
	}, nil
}

// fragment re-draws from the matching pool entry, falling back to the
// trait's own words when the period has no such entry
func (p *Period) fragment(c traits.Category, t *traits.Trait) string {
	if entry, ok := p.period.Entry(c, t.Name); ok {
		if fragment, ok := dice.Pick(p.roller, entry.Prompts); ok {
			return fragment
		}
	}
	return describe(t)
}
