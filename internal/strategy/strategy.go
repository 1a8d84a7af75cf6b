// Package strategy turns a catalog or an art period into trait selections
// and prompts. A strategy is resolved once per request.
package strategy

import (
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

//go:generate mockgen -destination=mock/mock_strategy.go -package=mockstrategy -source=strategy.go

// Name identifies a strategy in results and logs
type Name string

const (
	NameLegacy Name = "legacy"
	NamePeriod Name = "period"
)

// PromptResult is consumed immediately by image generation
type PromptResult struct {
	Prompt         string                 `json:"prompt"`
	NegativePrompt string                 `json:"negative_prompt"`
	Traits         *traits.SelectedTraits `json:"traits"`
}

// ImageSettings are the model choices that travel with a prompt.
// Zero values mean provider defaults.
type ImageSettings struct {
	Model     string  `json:"model,omitempty"`
	Steps     int     `json:"steps,omitempty"`
	Guidance  float64 `json:"guidance,omitempty"`
	Scheduler string  `json:"scheduler,omitempty"`
}

// Strategy selects and renders traits
type Strategy interface {
	Name() Name

	// Period is the art period behind the strategy, nil for legacy
	Period() *artperiod.ArtPeriod

	// SelectTraits draws one trait per category and an overall rarity.
	// Categories with nothing to draw from stay unassigned.
	SelectTraits() *traits.SelectedTraits

	// BuildPrompt validates the selection before rendering anything
	BuildPrompt(selected *traits.SelectedTraits) (*PromptResult, error)

	ImageSettings() ImageSettings
}
