package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/commupath/commupath/internal/llm"
	"github.com/commupath/commupath/internal/model"
	"github.com/commupath/commupath/internal/places"
	"github.com/commupath/commupath/internal/quest"
)

var (
	genLat         float64
	genLng         float64
	genCategory    string
	genPreferences string
	genTimeout     time.Duration
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a location-grounded community impact quest",
	Long: `Generate discovers real places near the given coordinates, ranks them,
and asks the generative service for a quest anchored to one of them. If
discovery or generation is unavailable the quest degrades to a
coordinates-only prompt and finally to a static template - generation
always succeeds.

Example:
  commupath generate --lat 7.3775 --lng 3.9470 --category Environment
  commupath generate --lat 6.45 --lng 3.39 --category Social --preferences "weekends only"`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Float64Var(&genLat, "lat", 0, "latitude of the quest area")
	generateCmd.Flags().Float64Var(&genLng, "lng", 0, "longitude of the quest area")
	generateCmd.Flags().StringVar(&genCategory, "category", "", "quest category (Environment, Social, Education, Health)")
	generateCmd.Flags().StringVar(&genPreferences, "preferences", "", "optional user preferences")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 2*time.Minute, "overall generation timeout")

	_ = generateCmd.MarkFlagRequired("lat")
	_ = generateCmd.MarkFlagRequired("lng")
	_ = generateCmd.MarkFlagRequired("category")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	coords, err := model.NewCoordinates(genLat, genLng)
	if err != nil {
		return err
	}
	category, err := model.ParseCategory(genCategory)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), genTimeout)
	defer cancel()

	orchestrator, err := buildOrchestrator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	outcome := orchestrator.Generate(ctx, coords, category, genPreferences)

	fmt.Println(mustJSON(outcome))
	return nil
}

// buildOrchestrator wires discovery and the generative provider. A missing
// Maps key yields empty discovery; a missing generative key yields a
// provider whose calls fail, so generation lands on the template tier.
func buildOrchestrator(ctx context.Context, cfg model.Config, logger *zap.Logger) (*quest.Orchestrator, error) {
	var client *places.Client
	if cfg.Maps.APIKey != "" {
		client = places.NewClient(cfg.Maps)
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set - place discovery disabled")
	}

	discovery, err := places.NewDiscovery(client, places.DefaultCategoryTypes(), cfg.Discovery, logger)
	if err != nil {
		return nil, err
	}

	provider := buildProvider(ctx, cfg, logger)
	return quest.NewOrchestrator(discovery, provider, cfg.Discovery, logger), nil
}

func buildProvider(ctx context.Context, cfg model.Config, logger *zap.Logger) llm.Provider {
	provider, err := llm.NewProvider(ctx, llm.ConfigFromModel(cfg.Generative))
	if err != nil {
		logger.Warn("generative provider unavailable", zap.Error(err))
		return llm.NewUnavailable(err)
	}
	return provider
}

func mustJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding error: %v\n", err)
		return "{}"
	}
	return string(out)
}
