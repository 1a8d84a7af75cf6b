// Package periods holds the art period registry: time-boxed generation
// configurations, of which at most one is current at any instant.
package periods

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/clock"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
	periodrepo "github.com/KirkDiggler/vertical-mint/internal/repositories/artperiods"
)

// Registry is safe for concurrent use. Every period handed out is a copy.
type Registry struct {
	mu      sync.RWMutex
	periods []*artperiod.ArtPeriod
	clock   clock.TimeProvider
	repo    periodrepo.Repository
	logger  *zap.Logger
}

// RegistryConfig holds the registry dependencies
type RegistryConfig struct {
	// Seed periods, in registry order
	Periods []*artperiod.ArtPeriod

	// Clock defaults to the system clock
	Clock clock.TimeProvider

	// Repository is optional; without it changes live in memory only
	Repository periodrepo.Repository

	Logger *zap.Logger
}

// NewRegistry builds a registry from seed periods. Seeds go through the
// same checks as Add, so a bad seed file fails here.
func NewRegistry(cfg *RegistryConfig) (*Registry, error) {
	if cfg == nil {
		cfg = &RegistryConfig{}
	}

	r := &Registry{
		clock:  cfg.Clock,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}
	if r.clock == nil {
		r.clock = &clock.RealTimeProvider{}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	for _, p := range cfg.Periods {
		if err := r.insert(p.Clone()); err != nil {
			return nil, errors.Wrapf(err, "invalid seed period %s", p.ID)
		}
	}

	return r, nil
}

// Load merges persisted periods over the seeds. A persisted period replaces
// the seed with the same ID; unknown IDs are appended when they fit.
func (r *Registry) Load(ctx context.Context) error {
	if r.repo == nil {
		return nil
	}

	stored, err := r.repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load persisted periods")
	}
	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].StartDate.Before(stored[j].StartDate)
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range stored {
		if i := r.indexOf(p.ID); i >= 0 {
			r.periods[i] = p
			continue
		}
		if err := r.insert(p); err != nil {
			r.logger.Warn("skipping persisted period",
				zap.String("period_id", p.ID),
				zap.Error(err))
		}
	}

	r.logger.Info("loaded persisted periods", zap.Int("count", len(stored)))
	return nil
}

// Now returns the registry clock's time
func (r *Registry) Now() time.Time {
	return r.clock.Now()
}

// Current returns the period driving generation at now, or nil. If stored
// data ever overlaps, the first match in registry order wins.
func (r *Registry) Current(now time.Time) *artperiod.ArtPeriod {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.periods {
		if p.IsCurrent(now) {
			return p.Clone()
		}
	}
	return nil
}

// Upcoming returns the soonest non-retired period starting after now
func (r *Registry) Upcoming(now time.Time) *artperiod.ArtPeriod {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var next *artperiod.ArtPeriod
	for _, p := range r.periods {
		if p.Retired || !p.StartDate.After(now) {
			continue
		}
		if next == nil || p.StartDate.Before(next.StartDate) {
			next = p
		}
	}
	return next.Clone()
}

// Add inserts a period. It fails without touching the registry when the
// period is invalid or overlaps a non-retired period.
func (r *Registry) Add(ctx context.Context, period *artperiod.ArtPeriod) error {
	if period == nil {
		return errors.Validation("period is required")
	}
	p := period.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(p); err != nil {
		return err
	}

	if r.repo != nil {
		if err := r.repo.Save(ctx, p); err != nil {
			return errors.Wrapf(err, "failed to persist period %s", p.ID)
		}
	}

	r.periods = append(r.periods, p)
	r.logger.Info("art period added",
		zap.String("period_id", p.ID),
		zap.Time("start", p.StartDate),
		zap.Time("end", p.EndDate))

	return nil
}

// Retire marks a period retired and inactive. Retiring twice is a no-op.
func (r *Registry) Retire(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return errors.NotFoundf("period %s not found", id).WithMeta("period_id", id)
	}

	current := r.periods[i]
	if current.Retired && !current.IsActive {
		return nil
	}

	retired := current.Clone()
	retired.Retired = true
	retired.IsActive = false

	if r.repo != nil {
		if err := r.repo.Save(ctx, retired); err != nil {
			return errors.Wrapf(err, "failed to persist retirement of %s", id)
		}
	}

	r.periods[i] = retired
	r.logger.Info("art period retired", zap.String("period_id", id))

	return nil
}

// Get returns a period by ID
func (r *Registry) Get(id string) (*artperiod.ArtPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, errors.NotFoundf("period %s not found", id).WithMeta("period_id", id)
	}
	return r.periods[i].Clone(), nil
}

// All returns every period sorted by start date
func (r *Registry) All() []*artperiod.ArtPeriod {
	r.mu.RLock()
	out := make([]*artperiod.ArtPeriod, len(r.periods))
	for i, p := range r.periods {
		out[i] = p.Clone()
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

// Retired returns the retired periods in registry order
func (r *Registry) Retired() []*artperiod.ArtPeriod {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*artperiod.ArtPeriod
	for _, p := range r.periods {
		if p.Retired {
			out = append(out, p.Clone())
		}
	}
	return out
}

// insert appends after checks; callers hold the lock or own r exclusively
func (r *Registry) insert(p *artperiod.ArtPeriod) error {
	if err := r.check(p); err != nil {
		return err
	}
	r.periods = append(r.periods, p)
	return nil
}

func (r *Registry) check(p *artperiod.ArtPeriod) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if r.indexOf(p.ID) >= 0 {
		return errors.Validationf("period %s already exists", p.ID).WithMeta("period_id", p.ID)
	}

	// Retired periods never come back, so they never block a new range
	if p.Retired {
		return nil
	}
	for _, existing := range r.periods {
		if existing.Retired {
			continue
		}
		if p.Overlaps(existing) {
			return errors.Conflictf("period %s overlaps period %s", p.ID, existing.ID).
				WithMeta("period_id", p.ID).
				WithMeta("conflicts_with", existing.ID)
		}
	}

	return nil
}

func (r *Registry) indexOf(id string) int {
	for i, p := range r.periods {
		if p.ID == id {
			return i
		}
	}
	return -1
}
