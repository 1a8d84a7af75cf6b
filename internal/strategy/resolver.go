package strategy

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

// PeriodSource is the part of the period registry the resolver reads
type PeriodSource interface {
	Now() time.Time
	Current(now time.Time) *artperiod.ArtPeriod
	Get(id string) (*artperiod.ArtPeriod, error)
}

// Resolver picks the strategy for a request: the current art period when
// there is one, the legacy catalog otherwise
type Resolver struct {
	periods PeriodSource
	legacy  *Legacy
	roller  dice.Roller
	logger  *zap.Logger
}

// ResolverConfig holds the resolver dependencies
type ResolverConfig struct {
	Periods PeriodSource
	Legacy  *Legacy
	Roller  dice.Roller
	Logger  *zap.Logger
}

// NewResolver creates a resolver
func NewResolver(cfg *ResolverConfig) *Resolver {
	if cfg == nil {
		panic("resolver config is required")
	}
	if cfg.Periods == nil {
		panic("period source is required")
	}
	if cfg.Legacy == nil {
		panic("legacy strategy is required")
	}

	r := &Resolver{
		periods: cfg.Periods,
		legacy:  cfg.Legacy,
		roller:  cfg.Roller,
		logger:  cfg.Logger,
	}
	if r.roller == nil {
		r.roller = dice.NewRandomRoller()
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r
}

// Resolve returns the strategy for the given instant
func (r *Resolver) Resolve(now time.Time) Strategy {
	if period := r.periods.Current(now); period != nil {
		return NewPeriod(period, r.roller, r.logger)
	}

	r.logger.Debug("no active art period, using legacy traits")
	return r.legacy
}

// Current resolves against the registry clock
func (r *Resolver) Current() Strategy {
	return r.Resolve(r.periods.Now())
}

// Preview renders with a period without activating it. A nil selection is
// drawn from the period itself.
func (r *Resolver) Preview(periodID string, selected *traits.SelectedTraits) (*PromptResult, error) {
	period, err := r.periods.Get(periodID)
	if err != nil {
		return nil, err
	}

	strategy := NewPeriod(period, r.roller, r.logger)
	if selected == nil {
		selected = strategy.SelectTraits()
	}

	return strategy.BuildPrompt(selected)
}
