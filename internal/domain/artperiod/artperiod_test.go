package artperiod_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func period(id, start, end string) *artperiod.ArtPeriod {
	return &artperiod.ArtPeriod{
		ID:        id,
		Name:      id,
		StartDate: day(start),
		EndDate:   day(end),
		IsActive:  true,
		TraitPools: map[traits.Category][]artperiod.PoolEntry{
			traits.CategorySpecies: {
				{Name: "Steam Noble", Weight: 35, Prompts: []string{"aristocratic automaton"}},
			},
		},
	}
}

func TestArtPeriod_ContainsIsHalfOpen(t *testing.T) {
	p := period("p", "2024-12-01", "2024-12-31")

	assert.True(t, p.Contains(day("2024-12-01")))
	assert.True(t, p.Contains(day("2024-12-30")))
	assert.False(t, p.Contains(day("2024-12-31")))
	assert.False(t, p.Contains(day("2024-11-30")))
}

func TestArtPeriod_IsCurrent(t *testing.T) {
	p := period("p", "2024-12-01", "2024-12-31")
	now := day("2024-12-10")
	assert.True(t, p.IsCurrent(now))

	p.Retired = true
	assert.False(t, p.IsCurrent(now))

	p.Retired = false
	p.IsActive = false
	assert.False(t, p.IsCurrent(now))
}

func TestArtPeriod_Overlaps(t *testing.T) {
	a := period("a", "2024-01-01", "2024-01-31")

	assert.True(t, a.Overlaps(period("b", "2024-01-30", "2024-02-10")))
	assert.True(t, a.Overlaps(period("c", "2023-12-01", "2024-03-01")))
	assert.False(t, a.Overlaps(period("d", "2024-01-31", "2024-02-10")), "adjacent ranges do not overlap")
	assert.False(t, a.Overlaps(period("e", "2023-12-01", "2024-01-01")))
}

func TestArtPeriod_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *artperiod.ArtPeriod)
	}{
		{name: "empty id", mutate: func(p *artperiod.ArtPeriod) { p.ID = "" }},
		{name: "end before start", mutate: func(p *artperiod.ArtPeriod) { p.EndDate = p.StartDate.Add(-time.Hour) }},
		{name: "end equals start", mutate: func(p *artperiod.ArtPeriod) { p.EndDate = p.StartDate }},
		{name: "zero weight", mutate: func(p *artperiod.ArtPeriod) {
			p.TraitPools[traits.CategorySpecies][0].Weight = 0
		}},
		{name: "unnamed entry", mutate: func(p *artperiod.ArtPeriod) {
			p.TraitPools[traits.CategorySpecies][0].Name = ""
		}},
	}

	require.NoError(t, period("ok", "2024-01-01", "2024-02-01").Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := period("p", "2024-01-01", "2024-02-01")
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestArtPeriod_CloneIsDeep(t *testing.T) {
	p := period("p", "2024-01-01", "2024-02-01")
	p.BasePrompts.Positive = []string{"masterpiece"}

	c := p.Clone()
	c.TraitPools[traits.CategorySpecies][0].Prompts[0] = "changed"
	c.BasePrompts.Positive[0] = "changed"

	assert.Equal(t, "aristocratic automaton", p.TraitPools[traits.CategorySpecies][0].Prompts[0])
	assert.Equal(t, "masterpiece", p.BasePrompts.Positive[0])
}

func TestArtPeriod_Entry(t *testing.T) {
	p := period("p", "2024-01-01", "2024-02-01")

	entry, ok := p.Entry(traits.CategorySpecies, "Steam Noble")
	require.True(t, ok)
	assert.Equal(t, 35.0, entry.Weight)

	_, ok = p.Entry(traits.CategoryHeadType, "Steam Noble")
	assert.False(t, ok)
}
