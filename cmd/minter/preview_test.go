package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/strategy"
)

func preview(t *testing.T, at, periodID string) *previewOutput {
	t.Helper()

	previewOpts.at = at
	previewOpts.periodID = periodID
	previewOpts.seed = 42
	t.Cleanup(func() {
		previewOpts.at = ""
		previewOpts.periodID = ""
		previewOpts.seed = 0
	})

	buf := &bytes.Buffer{}
	require.NoError(t, runPreview(buf))

	out := &previewOutput{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), out), buf.String())
	return out
}

func TestPreview_CurrentPeriod(t *testing.T) {
	out := preview(t, "2024-12-10T00:00:00Z", "")

	assert.Equal(t, strategy.NamePeriod, out.Strategy)
	assert.Equal(t, "steam-renaissance", out.PeriodID)
	assert.Contains(t, out.Prompt.Prompt, "steampunk renaissance style")
	assert.Equal(t, 4, out.Settings.Steps)
	require.NotNil(t, out.Prompt.Traits)
	assert.Empty(t, out.Prompt.Traits.Missing())
}

func TestPreview_LegacyOutsidePeriods(t *testing.T) {
	out := preview(t, "2030-01-01T00:00:00Z", "")

	assert.Equal(t, strategy.NameLegacy, out.Strategy)
	assert.Empty(t, out.PeriodID)
	assert.Contains(t, out.Prompt.Prompt, "2D digital cartoon mascot")
	assert.Equal(t, strategy.LegacyNegativePrompt, out.Prompt.NegativePrompt)
}

func TestPreview_RetiredPeriod(t *testing.T) {
	out := preview(t, "2030-01-01T00:00:00Z", "genesis-cyberpunk")

	assert.Equal(t, strategy.NamePeriod, out.Strategy)
	assert.Equal(t, "genesis-cyberpunk", out.PeriodID)
	assert.Contains(t, out.Prompt.Prompt, "cyberpunk aesthetic")
}

func TestPreview_SeedIsReproducible(t *testing.T) {
	first := preview(t, "2024-12-10T00:00:00Z", "")
	second := preview(t, "2024-12-10T00:00:00Z", "")
	assert.Equal(t, first.Prompt.Prompt, second.Prompt.Prompt)
}

func TestPreview_Errors(t *testing.T) {
	previewOpts.at = "yesterday"
	err := runPreview(&bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid --at")
	previewOpts.at = ""

	previewOpts.periodID = "unknown"
	err = runPreview(&bytes.Buffer{})
	assert.ErrorContains(t, err, "period unknown not found")
	previewOpts.periodID = ""
}

func TestConnectRedis_FallsBack(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	assert.Nil(t, connectRedis(ctx, "", log))
	assert.Nil(t, connectRedis(ctx, "not a url", log))
}
