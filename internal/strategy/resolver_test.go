package strategy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/vertical-mint/internal/clock"
	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
	"github.com/KirkDiggler/vertical-mint/internal/periods"
	"github.com/KirkDiggler/vertical-mint/internal/strategy"
)

func newResolver(t *testing.T, now time.Time) (*strategy.Resolver, *clock.FixedTimeProvider) {
	t.Helper()

	fixed := &clock.FixedTimeProvider{At: now}
	registry, err := periods.NewRegistry(&periods.RegistryConfig{
		Periods: []*artperiod.ArtPeriod{steamPeriod()},
		Clock:   fixed,
	})
	require.NoError(t, err)

	return strategy.NewResolver(&strategy.ResolverConfig{
		Periods: registry,
		Legacy:  strategy.NewLegacy(&strategy.LegacyConfig{Catalog: testCatalog(t)}),
		Roller:  dice.NewSeededRoller(11),
	}), fixed
}

func TestResolver_PicksPeriodWhenActive(t *testing.T) {
	resolver, fixed := newResolver(t, time.Date(2024, 12, 10, 12, 0, 0, 0, time.UTC))

	s := resolver.Current()
	assert.Equal(t, strategy.NamePeriod, s.Name())
	assert.Equal(t, "steam-renaissance", s.Period().ID)

	fixed.Set(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, strategy.NameLegacy, resolver.Current().Name())
}

func TestResolver_Preview(t *testing.T) {
	resolver, _ := newResolver(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, strategy.NameLegacy, resolver.Current().Name())

	result, err := resolver.Preview("steam-renaissance", nil)
	require.NoError(t, err)
	assert.Contains(t, result.Prompt, "steampunk renaissance style")
	assert.Equal(t, "modern technology, neon colors", result.NegativePrompt)

	result, err = resolver.Preview("steam-renaissance", robotSelection())
	require.NoError(t, err)
	assert.Contains(t, result.Prompt, "a friendly cartoon robot")

	_, err = resolver.Preview("unknown", nil)
	assert.True(t, errors.IsNotFound(err))
}
