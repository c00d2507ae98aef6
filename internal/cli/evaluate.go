package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/commupath/commupath/internal/judge"
	"github.com/commupath/commupath/internal/model"
)

var (
	evalQuestFile string
	evalTimeout   time.Duration
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a quest for safety and appropriateness",
	Long: `Evaluate runs the safety/feasibility/impact and cultural-appropriateness
rubrics over a quest JSON file. Each rubric scores 0-100 and is normalized
to 0-1; a quest passes when both rubrics reach 0.7.

If the evaluation service is unavailable the rubrics fall back to
optimistic defaults (0.8 safety, 0.85 appropriateness) so content is not
blocked on infrastructure failure.

Example:
  commupath evaluate --quest quest.json`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evalQuestFile, "quest", "", "path to a quest JSON file")
	evaluateCmd.Flags().DurationVar(&evalTimeout, "timeout", 2*time.Minute, "evaluation timeout")

	_ = evaluateCmd.MarkFlagRequired("quest")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(evalQuestFile)
	if err != nil {
		return fmt.Errorf("reading quest file: %w", err)
	}

	var quest model.Quest
	if err := json.Unmarshal(data, &quest); err != nil {
		return fmt.Errorf("parsing quest file: %w", err)
	}

	cfg := loadConfig()
	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), evalTimeout)
	defer cancel()

	j := judge.NewJudge(buildProvider(ctx, cfg, logger), logger)

	evaluation, err := j.EvaluateQuest(ctx, quest)
	if err != nil {
		return err
	}

	fmt.Println(mustJSON(struct {
		QuestID string `json:"quest_id"`
		judge.Evaluation
	}{QuestID: quest.QuestID, Evaluation: evaluation}))
	return nil
}
