package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/clients/chain"
	"github.com/KirkDiggler/vertical-mint/internal/clients/imagegen"
	"github.com/KirkDiggler/vertical-mint/internal/clients/pinata"
	"github.com/KirkDiggler/vertical-mint/internal/clock"
	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
	"github.com/KirkDiggler/vertical-mint/internal/periods"
	"github.com/KirkDiggler/vertical-mint/internal/repositories/artperiods"
	"github.com/KirkDiggler/vertical-mint/internal/repositories/generations"
	"github.com/KirkDiggler/vertical-mint/internal/services/generation"
	"github.com/KirkDiggler/vertical-mint/internal/strategy"
)

// Provider holds all service instances
type Provider struct {
	Generation generation.Service
	Periods    *periods.Registry
	Strategies *strategy.Resolver
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Catalog     *traits.TraitsData
	SeedPeriods []*artperiod.ArtPeriod

	ImageGenerator imagegen.Generator
	Pinner         pinata.Client
	// Contract is optional; without it metadata is never linked on chain
	Contract chain.Contract

	PeriodRepository     artperiods.Repository
	GenerationRepository generations.Repository

	Clock  clock.TimeProvider
	Roller dice.Roller

	MaxConcurrent int
	RetryAttempts int
	RetryDelay    time.Duration

	Logger *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("provider config is required")
	}
	if cfg.Catalog == nil {
		return nil, errors.InvalidArgument("trait catalog is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Use in-memory repositories if none provided
	periodRepo := cfg.PeriodRepository
	if periodRepo == nil {
		periodRepo = artperiods.NewInMemoryRepository()
	}

	records := cfg.GenerationRepository
	if records == nil {
		records = generations.NewInMemoryRepository()
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	registry, err := periods.NewRegistry(&periods.RegistryConfig{
		Periods:    cfg.SeedPeriods,
		Clock:      cfg.Clock,
		Repository: periodRepo,
		Logger:     logger.Named("periods"),
	})
	if err != nil {
		return nil, err
	}

	resolver := strategy.NewResolver(&strategy.ResolverConfig{
		Periods: registry,
		Legacy: strategy.NewLegacy(&strategy.LegacyConfig{
			Catalog: cfg.Catalog,
			Roller:  roller,
			Logger:  logger.Named("legacy"),
		}),
		Roller: roller,
		Logger: logger.Named("strategy"),
	})

	svc := generation.NewService(&generation.ServiceConfig{
		Strategies:     resolver,
		ImageGenerator: cfg.ImageGenerator,
		Pinner:         cfg.Pinner,
		Contract:       cfg.Contract,
		Records:        records,
		Clock:          cfg.Clock,
		Roller:         roller,
		MaxConcurrent:  cfg.MaxConcurrent,
		RetryAttempts:  cfg.RetryAttempts,
		RetryDelay:     cfg.RetryDelay,
		Logger:         logger.Named("generation"),
	})

	return &Provider{
		Generation: svc,
		Periods:    registry,
		Strategies: resolver,
	}, nil
}
