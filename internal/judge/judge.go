package judge

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/commupath/commupath/internal/llm"
	"github.com/commupath/commupath/internal/model"
)

// Rubric selects which evaluation a Score call runs.
type Rubric string

const (
	// RubricSafety covers safety, feasibility, and community impact.
	RubricSafety Rubric = "safety"

	// RubricAppropriateness covers cultural sensitivity and inclusivity.
	RubricAppropriateness Rubric = "appropriateness"
)

// fallbackValue is the optimistic default returned when an evaluation is
// unavailable. This deliberately favors availability over caution: content
// is not blocked on infrastructure failure. A policy choice, not a neutral
// default — see DESIGN.md.
func (r Rubric) fallbackValue() float64 {
	if r == RubricAppropriateness {
		return 0.85
	}
	return 0.8
}

// Judge scores quest text against a rubric using the generative service.
type Judge struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewJudge creates a content judge.
func NewJudge(provider llm.Provider, logger *zap.Logger) *Judge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Judge{provider: provider, logger: logger}
}

// Result is one rubric evaluation.
type Result struct {
	Value  float64 `json:"score"`  // normalized to [0, 1]
	Reason string  `json:"reason"`
}

type rubricFields struct {
	Score  *float64 `json:"score"`
	Reason string   `json:"reason"`
}

// Score evaluates quest text against the rubric. The service scores 0-100;
// the result is normalized by /100. Failures return the rubric's optimistic
// default with a reason noting the evaluation was unavailable.
func (j *Judge) Score(ctx context.Context, questText string, rubric Rubric) Result {
	raw, err := j.provider.GenerateJSON(ctx, llm.Request{
		Prompt: buildRubricPrompt(questText, rubric),
		Schema: rubricSchema(),
	})
	if err != nil {
		return j.degraded(rubric, fmt.Errorf("judge call: %w", err))
	}

	var fields rubricFields
	if err := llm.Decode(raw, &fields); err != nil {
		return j.degraded(rubric, err)
	}
	if fields.Score == nil {
		return j.degraded(rubric, fmt.Errorf("response missing score"))
	}

	value := *fields.Score / 100.0
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	return Result{Value: value, Reason: fields.Reason}
}

func (j *Judge) degraded(rubric Rubric, err error) Result {
	value := rubric.fallbackValue()
	j.logger.Warn("judge evaluation unavailable, using optimistic default",
		zap.String("rubric", string(rubric)),
		zap.Float64("fallback", value),
		zap.Error(err))

	return Result{
		Value:  value,
		Reason: fmt.Sprintf("Evaluation unavailable, assuming acceptable: %v", err),
	}
}

// Evaluation bundles both rubric results for one quest.
type Evaluation struct {
	Safety          Result  `json:"safety"`
	Appropriateness Result  `json:"appropriateness"`
	Overall         float64 `json:"overall_score"`
	Passed          bool    `json:"passed"`
}

// passThreshold is the minimum per-rubric value for a quest to pass.
const passThreshold = 0.7

// EvaluateQuest runs both rubrics over a quest and combines them.
func (j *Judge) EvaluateQuest(ctx context.Context, quest model.Quest) (Evaluation, error) {
	questJSON, err := json.MarshalIndent(quest, "", "  ")
	if err != nil {
		return Evaluation{}, fmt.Errorf("marshaling quest: %w", err)
	}

	safety := j.Score(ctx, string(questJSON), RubricSafety)
	appropriateness := j.Score(ctx, string(questJSON), RubricAppropriateness)

	return Evaluation{
		Safety:          safety,
		Appropriateness: appropriateness,
		Overall:         (safety.Value + appropriateness.Value) / 2,
		Passed:          safety.Value >= passThreshold && appropriateness.Value >= passThreshold,
	}, nil
}

func rubricSchema() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"score":  llm.Number("Score from 0 to 100"),
		"reason": llm.String("Brief explanation for the score"),
	}, "score", "reason")
}

func buildRubricPrompt(questText string, rubric Rubric) string {
	if rubric == RubricAppropriateness {
		return fmt.Sprintf(`Evaluate this community quest for cultural sensitivity and appropriateness.

Quest:
%s

Check for:
1. Cultural sensitivity and respect
2. Inclusive language
3. No discriminatory content
4. Appropriate for all ages/backgrounds
5. Respectful of local customs

Score 0-100 (0=inappropriate, 100=excellent). Respond in JSON with score and reason.`, questText)
	}

	return fmt.Sprintf(`You are a safety evaluator for community impact quests.
Evaluate the following quest for safety, appropriateness, and community benefit.

Quest Details:
%s

Evaluation Criteria:
1. Safety: Is the quest safe for participants and the community?
2. Appropriateness: Is it respectful, legal, and ethical?
3. Feasibility: Can it realistically be completed by volunteers?
4. Impact: Will it genuinely benefit the community?
5. Inclusivity: Is it accessible to diverse participants?

Provide a score from 0-100 (0=unsafe/inappropriate, 100=excellent) and a
brief reason (1-2 sentences). Respond in JSON with score and reason.`, questText)
}
