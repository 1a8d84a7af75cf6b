// Package generation runs the mint pipeline: traits, prompt, image, IPFS
// pins and the on-chain tokenURI link.
package generation

//go:generate mockgen -destination=mock/mock_service.go -package=mockgeneration -source=service.go

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/KirkDiggler/vertical-mint/internal/clients/chain"
	"github.com/KirkDiggler/vertical-mint/internal/clients/imagegen"
	"github.com/KirkDiggler/vertical-mint/internal/clients/pinata"
	"github.com/KirkDiggler/vertical-mint/internal/clock"
	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/domain/nft"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
	"github.com/KirkDiggler/vertical-mint/internal/repositories/generations"
	"github.com/KirkDiggler/vertical-mint/internal/strategy"
)

const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second
	MaxRetryWait         = 5 * time.Second
	DownloadTimeout      = 30 * time.Second

	// seedRange bounds the random sampler seed sent with each request
	seedRange = 1_000_000
)

// Service is the mint pipeline
type Service interface {
	// Generate runs the pipeline for caller-supplied traits
	Generate(ctx context.Context, input *GenerateInput) (*Result, error)

	// Mint selects traits with the current strategy, then generates
	Mint(ctx context.Context, tokenID uint64) (*Result, error)

	Record(ctx context.Context, tokenID uint64) (*nft.Record, error)
	Recent(ctx context.Context, limit int) ([]*nft.Record, error)

	// TokenURI reads the URI currently stored on-chain
	TokenURI(ctx context.Context, tokenID uint64) (string, error)
}

// StrategySource resolves the strategy for a request
type StrategySource interface {
	Current() strategy.Strategy
}

type GenerateInput struct {
	TokenID uint64
	Traits  *traits.SelectedTraits
}

// Result is returned once both pins succeed. MetadataLinked reports the
// best-effort setTokenURI call.
type Result struct {
	TokenID        uint64                 `json:"tokenId"`
	ImageURI       string                 `json:"imageUri"`
	MetadataURI    string                 `json:"metadataUri"`
	Metadata       *nft.TokenMetadata     `json:"metadata"`
	Traits         *traits.SelectedTraits `json:"traits"`
	Prompt         *strategy.PromptResult `json:"prompt"`
	Strategy       strategy.Name          `json:"strategy"`
	PeriodID       string                 `json:"periodId,omitempty"`
	MetadataLinked bool                   `json:"metadataLinked"`
	TxHash         string                 `json:"txHash,omitempty"`
}

type service struct {
	strategies    StrategySource
	images        imagegen.Generator
	pinner        pinata.Client
	contract      chain.Contract
	records       generations.Repository
	httpClient    *http.Client
	clock         clock.TimeProvider
	roller        dice.Roller
	sem           *semaphore.Weighted
	retryAttempts int
	retryDelay    time.Duration
	logger        *zap.Logger
}

// ServiceConfig holds the pipeline dependencies. Contract is optional;
// without it tokens are never linked on-chain.
type ServiceConfig struct {
	Strategies     StrategySource
	ImageGenerator imagegen.Generator
	Pinner         pinata.Client
	Contract       chain.Contract
	Records        generations.Repository
	HTTPClient     *http.Client
	Clock          clock.TimeProvider
	Roller         dice.Roller
	// MaxConcurrent caps simultaneous runs; 0 means unlimited
	MaxConcurrent int
	RetryAttempts int
	RetryDelay    time.Duration
	Logger        *zap.Logger
}

// NewService creates the generation service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("service config is required")
	}
	if cfg.Strategies == nil {
		panic("strategy source is required")
	}
	if cfg.ImageGenerator == nil {
		panic("image generator is required")
	}
	if cfg.Pinner == nil {
		panic("pinning client is required")
	}

	svc := &service{
		strategies:    cfg.Strategies,
		images:        cfg.ImageGenerator,
		pinner:        cfg.Pinner,
		contract:      cfg.Contract,
		records:       cfg.Records,
		httpClient:    cfg.HTTPClient,
		clock:         cfg.Clock,
		roller:        cfg.Roller,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		logger:        cfg.Logger,
	}

	if svc.records == nil {
		svc.records = generations.NewInMemoryRepository()
	}
	if svc.httpClient == nil {
		svc.httpClient = &http.Client{Timeout: DownloadTimeout}
	}
	if svc.clock == nil {
		svc.clock = &clock.RealTimeProvider{}
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.retryAttempts <= 0 {
		svc.retryAttempts = DefaultRetryAttempts
	}
	if svc.retryDelay <= 0 {
		svc.retryDelay = DefaultRetryDelay
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if cfg.MaxConcurrent > 0 {
		svc.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}

	return svc
}

func (s *service) Generate(ctx context.Context, input *GenerateInput) (*Result, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	return s.run(ctx, input.TokenID, input.Traits, nil)
}

func (s *service) Mint(ctx context.Context, tokenID uint64) (*Result, error) {
	strat := s.strategies.Current()
	return s.run(ctx, tokenID, strat.SelectTraits(), strat)
}

func (s *service) Record(ctx context.Context, tokenID uint64) (*nft.Record, error) {
	return s.records.Get(ctx, tokenID)
}

func (s *service) Recent(ctx context.Context, limit int) ([]*nft.Record, error) {
	return s.records.ListRecent(ctx, limit)
}

func (s *service) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	if s.contract == nil {
		return "", errors.Unavailablef("chain access is not configured")
	}

	uri, err := s.contract.TokenURI(ctx, tokenID)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read tokenURI")
	}
	return uri, nil
}
