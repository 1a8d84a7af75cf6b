package periods_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/vertical-mint/internal/clock"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	apperrors "github.com/KirkDiggler/vertical-mint/internal/errors"
	"github.com/KirkDiggler/vertical-mint/internal/periods"
	mockartperiods "github.com/KirkDiggler/vertical-mint/internal/repositories/artperiods/mock"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

func newPeriod(id string, start, end time.Time) *artperiod.ArtPeriod {
	return &artperiod.ArtPeriod{
		ID:        id,
		Name:      id,
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
		TraitPools: map[traits.Category][]artperiod.PoolEntry{
			traits.CategorySpecies: {{Name: "Gear Artisan", Weight: 30, Prompts: []string{"clockwork engineer"}}},
		},
	}
}

type RegistryTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockCtrl *gomock.Controller
	repo     *mockartperiods.MockRepository
	clock    *clock.FixedTimeProvider
	registry *periods.Registry
}

func (s *RegistryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.repo = mockartperiods.NewMockRepository(s.mockCtrl)
	s.clock = &clock.FixedTimeProvider{At: date(time.March, 10)}

	var err error
	s.registry, err = periods.NewRegistry(&periods.RegistryConfig{
		Periods: []*artperiod.ArtPeriod{
			newPeriod("march", date(time.March, 1), date(time.April, 1)),
			newPeriod("may", date(time.May, 1), date(time.June, 1)),
		},
		Clock:      s.clock,
		Repository: s.repo,
	})
	s.Require().NoError(err)
}

func (s *RegistryTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) TestCurrent() {
	current := s.registry.Current(s.registry.Now())
	s.Require().NotNil(current)
	s.Equal("march", current.ID)

	s.Equal("may", s.registry.Current(date(time.May, 1)).ID, "start is inclusive")
	s.Nil(s.registry.Current(date(time.June, 1)), "end is exclusive")
}

func (s *RegistryTestSuite) TestCurrent_GapReturnsNil() {
	s.Nil(s.registry.Current(date(time.April, 15)))
}

func (s *RegistryTestSuite) TestCurrent_ReturnsCopy() {
	current := s.registry.Current(date(time.March, 10))
	current.Name = "changed"
	current.TraitPools[traits.CategorySpecies][0].Weight = 1

	again := s.registry.Current(date(time.March, 10))
	s.Equal("march", again.Name)
	s.Equal(30.0, again.TraitPools[traits.CategorySpecies][0].Weight)
}

func (s *RegistryTestSuite) TestUpcoming() {
	s.Equal("may", s.registry.Upcoming(date(time.March, 10)).ID)
	s.Nil(s.registry.Upcoming(date(time.May, 10)))
}

func (s *RegistryTestSuite) TestAdd() {
	july := newPeriod("july", date(time.July, 1), date(time.August, 1))
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

	s.Require().NoError(s.registry.Add(s.ctx, july))
	s.Equal("july", s.registry.Current(date(time.July, 4)).ID)
	s.Len(s.registry.All(), 3)
}

func (s *RegistryTestSuite) TestAdd_AdjacentRangeAllowed() {
	april := newPeriod("april", date(time.April, 1), date(time.May, 1))
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

	s.NoError(s.registry.Add(s.ctx, april))
}

func (s *RegistryTestSuite) TestAdd_OverlapFailsWithoutMutation() {
	before := s.registry.All()

	overlap := newPeriod("overlap", date(time.March, 20), date(time.April, 10))
	err := s.registry.Add(s.ctx, overlap)

	s.Require().Error(err)
	s.True(apperrors.IsConflict(err))
	s.Equal(before, s.registry.All())
	_, err = s.registry.Get("overlap")
	s.True(apperrors.IsNotFound(err))
}

func (s *RegistryTestSuite) TestAdd_RetiredPeriodDoesNotBlock() {
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil).Times(2)
	s.Require().NoError(s.registry.Retire(s.ctx, "march"))

	replacement := newPeriod("march-v2", date(time.March, 5), date(time.March, 25))
	s.NoError(s.registry.Add(s.ctx, replacement))
	s.Equal("march-v2", s.registry.Current(date(time.March, 10)).ID)
}

func (s *RegistryTestSuite) TestAdd_Validation() {
	dup := newPeriod("march", date(time.September, 1), date(time.October, 1))
	s.True(apperrors.IsValidation(s.registry.Add(s.ctx, dup)))

	backwards := newPeriod("backwards", date(time.October, 1), date(time.September, 1))
	s.True(apperrors.IsValidation(s.registry.Add(s.ctx, backwards)))

	noID := newPeriod("", date(time.September, 1), date(time.October, 1))
	s.True(apperrors.IsValidation(s.registry.Add(s.ctx, noID)))

	badWeight := newPeriod("weights", date(time.September, 1), date(time.October, 1))
	badWeight.TraitPools[traits.CategorySpecies][0].Weight = -5
	s.True(apperrors.IsValidation(s.registry.Add(s.ctx, badWeight)))

	s.True(apperrors.IsValidation(s.registry.Add(s.ctx, nil)))
	s.Len(s.registry.All(), 2)
}

func (s *RegistryTestSuite) TestAdd_PersistFailureLeavesRegistryUnchanged() {
	july := newPeriod("july", date(time.July, 1), date(time.August, 1))
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).Return(errors.New("redis down"))

	s.Error(s.registry.Add(s.ctx, july))
	s.Len(s.registry.All(), 2)
}

func (s *RegistryTestSuite) TestRetire_Idempotent() {
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p *artperiod.ArtPeriod) error {
			s.True(p.Retired)
			s.False(p.IsActive)
			return nil
		})

	s.Require().NoError(s.registry.Retire(s.ctx, "march"))
	s.Require().NoError(s.registry.Retire(s.ctx, "march"))

	s.Nil(s.registry.Current(date(time.March, 10)))
	retired := s.registry.Retired()
	s.Require().Len(retired, 1)
	s.Equal("march", retired[0].ID)
}

func (s *RegistryTestSuite) TestRetire_UnknownID() {
	s.True(apperrors.IsNotFound(s.registry.Retire(s.ctx, "nope")))
}

func (s *RegistryTestSuite) TestAll_SortedByStart() {
	s.repo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)
	s.Require().NoError(s.registry.Add(s.ctx, newPeriod("jan", date(time.January, 1), date(time.February, 1))))

	all := s.registry.All()
	s.Require().Len(all, 3)
	s.Equal([]string{"jan", "march", "may"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func (s *RegistryTestSuite) TestLoad_MergesPersisted() {
	retiredMarch := newPeriod("march", date(time.March, 1), date(time.April, 1))
	retiredMarch.Retired = true
	retiredMarch.IsActive = false

	s.repo.EXPECT().List(s.ctx).Return([]*artperiod.ArtPeriod{
		retiredMarch,
		newPeriod("july", date(time.July, 1), date(time.August, 1)),
		newPeriod("clash", date(time.May, 10), date(time.May, 20)),
	}, nil)

	s.Require().NoError(s.registry.Load(s.ctx))

	s.Nil(s.registry.Current(date(time.March, 10)))
	s.Equal("july", s.registry.Current(date(time.July, 2)).ID)
	_, err := s.registry.Get("clash")
	s.True(apperrors.IsNotFound(err), "overlapping persisted period is skipped")
}

func (s *RegistryTestSuite) TestLoad_RepositoryError() {
	s.repo.EXPECT().List(s.ctx).Return(nil, errors.New("redis down"))
	s.Error(s.registry.Load(s.ctx))
}

func (s *RegistryTestSuite) TestConcurrentReadsAndWrites() {
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.registry.Current(date(time.March, 10))
			_ = s.registry.All()
		}()
		go func(i int) {
			defer wg.Done()
			start := date(time.September, 1).AddDate(0, 0, i*2)
			_ = s.registry.Add(s.ctx, newPeriod(start.Format("sep-02"), start, start.AddDate(0, 0, 2)))
		}(i)
	}
	wg.Wait()

	s.Len(s.registry.All(), 12)
}

func TestNewRegistry_RejectsOverlappingSeeds(t *testing.T) {
	_, err := periods.NewRegistry(&periods.RegistryConfig{
		Periods: []*artperiod.ArtPeriod{
			newPeriod("a", date(time.March, 1), date(time.April, 1)),
			newPeriod("b", date(time.March, 15), date(time.April, 15)),
		},
	})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestNewRegistry_NoRepository(t *testing.T) {
	r, err := periods.NewRegistry(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(context.Background(), newPeriod("a", date(time.March, 1), date(time.April, 1))); err != nil {
		t.Fatal(err)
	}
	if r.Current(date(time.March, 2)) == nil {
		t.Fatal("expected current period")
	}
}
