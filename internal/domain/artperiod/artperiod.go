package artperiod

import (
	"time"

	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

// ArtPeriod is a time-boxed generation configuration.
// The date range is half open: [StartDate, EndDate).
type ArtPeriod struct {
	ID          string                          `json:"id" yaml:"id"`
	Name        string                          `json:"name" yaml:"name"`
	Description string                          `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate   time.Time                       `json:"startDate" yaml:"startDate"`
	EndDate     time.Time                       `json:"endDate" yaml:"endDate"`
	IsActive    bool                            `json:"isActive" yaml:"isActive"`
	Retired     bool                            `json:"retired" yaml:"retired"`
	Model       ModelConfig                     `json:"model" yaml:"model"`
	TraitPools  map[traits.Category][]PoolEntry `json:"traitPools" yaml:"traitPools"`
	BasePrompts BasePrompts                     `json:"basePrompts" yaml:"basePrompts"`
}

// ModelConfig selects the image model and its sampler settings
type ModelConfig struct {
	Name           string        `json:"name" yaml:"name"`
	Version        string        `json:"version,omitempty" yaml:"version,omitempty"`
	ReplicateModel string        `json:"replicateModel,omitempty" yaml:"replicateModel,omitempty"`
	Settings       ModelSettings `json:"settings" yaml:"settings"`
}

type ModelSettings struct {
	Steps     int     `json:"steps" yaml:"steps"`
	Guidance  float64 `json:"guidance" yaml:"guidance"`
	Scheduler string  `json:"scheduler,omitempty" yaml:"scheduler,omitempty"`
}

// PoolEntry is one weighted option in a category pool
type PoolEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Weight  float64  `json:"weight" yaml:"weight"`
	Prompts []string `json:"prompts" yaml:"prompts"`
}

type BasePrompts struct {
	Positive []string `json:"positive" yaml:"positive"`
	Negative []string `json:"negative" yaml:"negative"`
	Style    []string `json:"style" yaml:"style"`
}

// Contains reports whether t falls inside [StartDate, EndDate)
func (p *ArtPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && t.Before(p.EndDate)
}

// IsCurrent reports whether the period drives generation at t
func (p *ArtPeriod) IsCurrent(t time.Time) bool {
	return p.IsActive && !p.Retired && p.Contains(t)
}

// Overlaps reports whether two half-open ranges intersect
func (p *ArtPeriod) Overlaps(other *ArtPeriod) bool {
	return p.StartDate.Before(other.EndDate) && other.StartDate.Before(p.EndDate)
}

// Pool returns the weighted entries for a category
func (p *ArtPeriod) Pool(c traits.Category) []PoolEntry {
	return p.TraitPools[c]
}

// Entry finds a pool entry by name
func (p *ArtPeriod) Entry(c traits.Category, name string) (*PoolEntry, bool) {
	pool := p.TraitPools[c]
	for i := range pool {
		if pool[i].Name == name {
			return &pool[i], true
		}
	}
	return nil, false
}

// Validate checks the period on its own; overlap is checked by the registry
func (p *ArtPeriod) Validate() error {
	if p.ID == "" {
		return errors.Validation("period id is required")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return errors.Validationf("period %s needs a start and end date", p.ID)
	}
	if !p.EndDate.After(p.StartDate) {
		return errors.Validationf("period %s ends before it starts", p.ID)
	}

	for category, pool := range p.TraitPools {
		for _, entry := range pool {
			if entry.Name == "" {
				return errors.Validationf("period %s has an unnamed %s pool entry", p.ID, category)
			}
			if entry.Weight <= 0 {
				return errors.Validationf("period %s: %s/%s weight must be positive", p.ID, category, entry.Name).
					WithMeta("weight", entry.Weight)
			}
		}
	}

	return nil
}

// Clone returns a deep copy so callers never share registry state
func (p *ArtPeriod) Clone() *ArtPeriod {
	if p == nil {
		return nil
	}

	out := *p
	out.BasePrompts = BasePrompts{
		Positive: cloneStrings(p.BasePrompts.Positive),
		Negative: cloneStrings(p.BasePrompts.Negative),
		Style:    cloneStrings(p.BasePrompts.Style),
	}

	if p.TraitPools != nil {
		out.TraitPools = make(map[traits.Category][]PoolEntry, len(p.TraitPools))
		for category, pool := range p.TraitPools {
			entries := make([]PoolEntry, len(pool))
			for i, entry := range pool {
				entries[i] = PoolEntry{
					Name:    entry.Name,
					Weight:  entry.Weight,
					Prompts: cloneStrings(entry.Prompts),
				}
			}
			out.TraitPools[category] = entries
		}
	}

	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
