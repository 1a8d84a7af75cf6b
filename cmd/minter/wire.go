package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/catalog"
	"github.com/KirkDiggler/vertical-mint/internal/clients/chain"
	"github.com/KirkDiggler/vertical-mint/internal/clients/imagegen"
	"github.com/KirkDiggler/vertical-mint/internal/clients/pinata"
	"github.com/KirkDiggler/vertical-mint/internal/config"
	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/periods"
	"github.com/KirkDiggler/vertical-mint/internal/repositories/artperiods"
	"github.com/KirkDiggler/vertical-mint/internal/repositories/generations"
	"github.com/KirkDiggler/vertical-mint/internal/services"
)

const redisPingTimeout = 5 * time.Second

type app struct {
	provider *services.Provider
	redis    *redis.Client
	logger   *zap.Logger
}

// Close releases the Redis connection, if any
func (a *app) Close() {
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("Failed to close Redis connection", zap.Error(err))
	}
}

// newApp builds clients, repositories and services from config. dialChain
// is false for commands that never write on chain.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger, dialChain bool) (*app, error) {
	a := &app{logger: log}

	data, err := loadCatalog(cfg.TraitsFile)
	if err != nil {
		return nil, err
	}
	seeds, err := loadPeriods(cfg.PeriodsFile)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 2 * time.Minute}

	images, err := newImageGenerator(ctx, cfg, httpClient, log)
	if err != nil {
		return nil, err
	}

	pinner, err := pinata.New(&pinata.Config{
		APIKey:     cfg.Pinata.APIKey,
		Secret:     cfg.Pinata.Secret,
		JWT:        cfg.Pinata.JWT,
		BaseURL:    cfg.Pinata.BaseURL,
		HTTPClient: httpClient,
		Logger:     log.Named("pinata"),
	})
	if err != nil {
		return nil, err
	}

	providerConfig := &services.ProviderConfig{
		Catalog:        data,
		SeedPeriods:    seeds,
		ImageGenerator: images,
		Pinner:         pinner,
		MaxConcurrent:  cfg.MaxConcurrentGenerations,
		RetryAttempts:  cfg.Image.RetryAttempts,
		RetryDelay:     cfg.Image.RetryDelay,
		Logger:         log,
	}

	if dialChain && cfg.Chain.Enabled() {
		contract, err := chain.Dial(ctx, &chain.Config{
			RPCURL:          cfg.Chain.RPCURL,
			ContractAddress: cfg.Chain.ContractAddress,
			PrivateKey:      cfg.Chain.PrivateKey,
			ChainID:         cfg.Chain.ChainID,
			Logger:          log.Named("chain"),
		})
		if err != nil {
			return nil, err
		}
		providerConfig.Contract = contract
	} else if dialChain {
		log.Warn("CONTRACT_ADDRESS or PRIVATE_KEY not set, token URIs will not be updated")
	}

	a.redis = connectRedis(ctx, cfg.RedisURL, log)
	if a.redis != nil {
		providerConfig.PeriodRepository = artperiods.NewRedis(a.redis)
		providerConfig.GenerationRepository = generations.NewCached(generations.NewRedis(a.redis), generations.DefaultCacheSize)
		log.Info("Using Redis for persistence")
	} else {
		log.Info("Using in-memory repositories")
	}

	a.provider, err = services.NewProvider(providerConfig)
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func newImageGenerator(ctx context.Context, cfg *config.Config, httpClient *http.Client, log *zap.Logger) (imagegen.Generator, error) {
	if cfg.Image.Provider == config.ProviderGenAI {
		return imagegen.NewGenAI(ctx, &imagegen.GenAIConfig{
			APIKey:     cfg.GenAI.APIKey,
			Model:      cfg.GenAI.Model,
			HTTPClient: httpClient,
			Logger:     log.Named("genai"),
		})
	}

	return imagegen.NewReplicate(&imagegen.ReplicateConfig{
		APIToken:     cfg.Replicate.APIToken,
		BaseURL:      cfg.Replicate.BaseURL,
		DefaultModel: cfg.Replicate.Model,
		HTTPClient:   httpClient,
		Logger:       log.Named("replicate"),
	})
}

// connectRedis returns nil when no URL is set or the server is unreachable;
// the service then runs on in-memory repositories
func connectRedis(ctx context.Context, url string, log *zap.Logger) *redis.Client {
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Failed to parse Redis URL, falling back to in-memory repositories", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Failed to connect to Redis, falling back to in-memory repositories",
			zap.String("addr", opts.Addr),
			zap.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("Connected to Redis", zap.String("addr", opts.Addr))
	return client
}

func loadCatalog(path string) (*traits.TraitsData, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func loadPeriods(path string) ([]*artperiod.ArtPeriod, error) {
	if path == "" {
		return periods.Seed()
	}
	return periods.LoadFile(path)
}
