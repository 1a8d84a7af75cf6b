package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/vertical-mint/internal/clock"
	"github.com/KirkDiggler/vertical-mint/internal/dice"
	"github.com/KirkDiggler/vertical-mint/internal/periods"
	"github.com/KirkDiggler/vertical-mint/internal/strategy"
)

var previewOpts struct {
	traitsFile  string
	periodsFile string
	periodID    string
	at          string
	seed        uint64
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a trait selection and prompt without generating",
	Long: `Selects traits and renders the prompt the pipeline would send to the
image model. Runs offline; no credentials are needed.

Examples:
  minter preview
  minter preview --at 2024-12-10T00:00:00Z --seed 42
  minter preview --period genesis-cyberpunk`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd.OutOrStdout())
	},
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewOpts.traitsFile, "traits", "", "trait catalog file (default embedded catalog)")
	f.StringVar(&previewOpts.periodsFile, "periods", "", "art periods file (default embedded periods)")
	f.StringVar(&previewOpts.periodID, "period", "", "render with this period even if it is not current")
	f.StringVar(&previewOpts.at, "at", "", "resolve the strategy at this RFC3339 time (default now)")
	f.Uint64Var(&previewOpts.seed, "seed", 0, "seed the trait draws for a reproducible preview")
}

type previewOutput struct {
	Strategy strategy.Name          `json:"strategy"`
	PeriodID string                 `json:"periodId,omitempty"`
	Prompt   *strategy.PromptResult `json:"prompt"`
	Settings strategy.ImageSettings `json:"settings"`
}

func runPreview(out io.Writer) error {
	data, err := loadCatalog(previewOpts.traitsFile)
	if err != nil {
		return err
	}
	seeds, err := loadPeriods(previewOpts.periodsFile)
	if err != nil {
		return err
	}

	now := time.Now()
	if previewOpts.at != "" {
		now, err = time.Parse(time.RFC3339, previewOpts.at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	var roller dice.Roller = dice.NewRandomRoller()
	if previewOpts.seed != 0 {
		roller = dice.NewSeededRoller(previewOpts.seed)
	}

	registry, err := periods.NewRegistry(&periods.RegistryConfig{
		Periods: seeds,
		Clock:   &clock.FixedTimeProvider{At: now},
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	resolver := strategy.NewResolver(&strategy.ResolverConfig{
		Periods: registry,
		Legacy: strategy.NewLegacy(&strategy.LegacyConfig{
			Catalog: data,
			Roller:  roller,
			Logger:  logger,
		}),
		Roller: roller,
		Logger: logger,
	})

	output := &previewOutput{}
	if previewOpts.periodID != "" {
		period, err := registry.Get(previewOpts.periodID)
		if err != nil {
			return err
		}
		if output.Prompt, err = resolver.Preview(period.ID, nil); err != nil {
			return err
		}
		output.Strategy = strategy.NamePeriod
		output.PeriodID = period.ID
		output.Settings = strategy.NewPeriod(period, roller, logger).ImageSettings()
	} else {
		strat := resolver.Current()
		if output.Prompt, err = strat.BuildPrompt(strat.SelectTraits()); err != nil {
			return err
		}
		output.Strategy = strat.Name()
		output.Settings = strat.ImageSettings()
		if p := strat.Period(); p != nil {
			output.PeriodID = p.ID
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
