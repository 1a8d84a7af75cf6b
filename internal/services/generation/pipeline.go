package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/clients/imagegen"
	"github.com/KirkDiggler/vertical-mint/internal/clients/pinata"
	"github.com/KirkDiggler/vertical-mint/internal/domain/nft"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
	"github.com/KirkDiggler/vertical-mint/internal/metrics"
	"github.com/KirkDiggler/vertical-mint/internal/strategy"
)

// run executes the ordered stages. Everything up to the metadata pin is
// fatal; the on-chain link is not.
func (s *service) run(ctx context.Context, tokenID uint64, selected *traits.SelectedTraits, strat strategy.Strategy) (*Result, error) {
	log := s.logger.With(zap.Uint64("token_id", tokenID))

	if err := selected.Validate(); err != nil {
		metrics.ObserveGeneration(strategyLabel(strat), metrics.OutcomeInvalid)
		return nil, err
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "waiting for a generation slot")
		}
		defer s.sem.Release(1)
	}
	defer metrics.TrackInFlight()()

	if strat == nil {
		strat = s.strategies.Current()
	}
	label := strategyLabel(strat)

	start := time.Now()
	prompt, err := strat.BuildPrompt(selected)
	if err != nil {
		metrics.ObserveGeneration(label, metrics.OutcomeInvalid)
		return nil, err
	}
	metrics.ObserveStage(metrics.StagePrompt, start)

	result := &Result{
		TokenID:  tokenID,
		Traits:   selected,
		Prompt:   prompt,
		Strategy: strat.Name(),
	}
	if p := strat.Period(); p != nil {
		result.PeriodID = p.ID
		log = log.With(zap.String("period_id", p.ID))
	}
	log.Info("generating",
		zap.String("strategy", label),
		zap.String("rarity", selected.EffectiveRarity().String()))

	settings := strat.ImageSettings()
	image, err := s.generateImage(ctx, log, &imagegen.ImageRequest{
		Prompt:         prompt.Prompt,
		NegativePrompt: prompt.NegativePrompt,
		Width:          imagegen.DefaultWidth,
		Height:         imagegen.DefaultHeight,
		Model:          settings.Model,
		Steps:          settings.Steps,
		Guidance:       settings.Guidance,
		Scheduler:      settings.Scheduler,
		Seed:           int64(s.roller.Intn(seedRange)),
	})
	if err != nil {
		metrics.ObserveGeneration(label, metrics.OutcomeImageFailed)
		return nil, err
	}

	start = time.Now()
	data, mimeType, err := s.imageBytes(ctx, image)
	if err != nil {
		metrics.ObserveGeneration(label, metrics.OutcomeImageFailed)
		return nil, err
	}
	metrics.ObserveStage(metrics.StageDownload, start)

	start = time.Now()
	imagePin, err := s.pinner.PinFile(ctx, &pinata.File{
		Name: imageFileName(s.clock.Now(), mimeType),
		Data: data,
	})
	if err != nil {
		metrics.ObserveGeneration(label, metrics.OutcomePinFailed)
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to pin image")
	}
	metrics.ObserveStage(metrics.StagePinImage, start)
	result.ImageURI = imagePin.URI()

	result.Metadata = nft.NewTokenMetadata(tokenID, result.ImageURI, selected)
	raw, err := json.MarshalIndent(result.Metadata, "", "  ")
	if err != nil {
		metrics.ObserveGeneration(label, metrics.OutcomeError)
		return nil, errors.Wrap(err, "failed to encode metadata")
	}

	start = time.Now()
	fileName := nft.FileName(tokenID)
	folder, err := s.pinner.PinDirectory(ctx, metadataDir(tokenID), []*pinata.File{{Name: fileName, Data: raw}})
	if err != nil {
		metrics.ObserveGeneration(label, metrics.OutcomePinFailed)
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to pin metadata")
	}
	metrics.ObserveStage(metrics.StagePinMeta, start)
	result.MetadataURI = fmt.Sprintf("%s/%s", folder.URI(), fileName)

	s.link(ctx, log, result)

	s.record(ctx, log, result)
	metrics.ObserveGeneration(label, metrics.OutcomeSuccess)
	log.Info("generated",
		zap.String("image_uri", result.ImageURI),
		zap.String("metadata_uri", result.MetadataURI),
		zap.Bool("metadata_linked", result.MetadataLinked))

	return result, nil
}

// link calls setTokenURI; failures only clear MetadataLinked
func (s *service) link(ctx context.Context, log *zap.Logger, result *Result) {
	if s.contract == nil {
		log.Warn("chain linking disabled, tokenURI not set")
		metrics.ObserveLinkFailure()
		return
	}

	start := time.Now()
	txHash, err := s.contract.SetTokenURI(ctx, result.TokenID, result.MetadataURI)
	metrics.ObserveStage(metrics.StageLink, start)
	result.TxHash = txHash
	if err != nil {
		log.Error("failed to set tokenURI",
			zap.String("metadata_uri", result.MetadataURI),
			zap.String("tx_hash", txHash),
			zap.Error(err))
		metrics.ObserveLinkFailure()
		return
	}

	result.MetadataLinked = true
}

func (s *service) record(ctx context.Context, log *zap.Logger, result *Result) {
	err := s.records.Save(ctx, &nft.Record{
		TokenID:        result.TokenID,
		ImageURI:       result.ImageURI,
		MetadataURI:    result.MetadataURI,
		Metadata:       result.Metadata,
		Traits:         result.Traits,
		Prompt:         result.Prompt.Prompt,
		NegativePrompt: result.Prompt.NegativePrompt,
		Strategy:       string(result.Strategy),
		PeriodID:       result.PeriodID,
		MetadataLinked: result.MetadataLinked,
		TxHash:         result.TxHash,
		CreatedAt:      s.clock.Now(),
	})
	if err != nil {
		log.Warn("failed to record generation", zap.Error(err))
	}
}

func strategyLabel(strat strategy.Strategy) string {
	if strat == nil {
		return "unresolved"
	}
	return string(strat.Name())
}

func metadataDir(tokenID uint64) string {
	return fmt.Sprintf("vertical-metadata-%d", tokenID)
}

func imageFileName(now time.Time, mimeType string) string {
	ext := "png"
	switch mimeType {
	case "image/jpeg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	case "image/gif":
		ext = "gif"
	}
	return fmt.Sprintf("vertical-nft-%d.%s", now.UnixMilli(), ext)
}
