package verify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/commupath/commupath/internal/llm"
	"github.com/commupath/commupath/internal/model"
)

// Verifier turns an uploaded proof image plus quest context into a
// calibrated verification outcome. It never returns an error: failures
// degrade to an Unclear, zero-point outcome.
type Verifier struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewVerifier creates a proof verifier.
func NewVerifier(provider llm.Provider, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{provider: provider, logger: logger}
}

// Proof is the input to one verification call.
type Proof struct {
	Image    []byte
	MIMEType string // defaults to image/jpeg

	QuestTitle       string
	QuestDescription string
	QuestCategory    model.Category

	// UserNote is the submitter's free-text description, may be empty
	UserNote string
}

// verificationFields is the structured response from the vision service.
// Pointers distinguish absent required fields from zero values.
type verificationFields struct {
	Confidence      *float64 `json:"confidence_score"`
	Verdict         string   `json:"verification_result"`
	Reasoning       string   `json:"reasoning"`
	SuggestedPoints *int     `json:"suggested_points"`
	Observations    []string `json:"key_observations"`
}

// Verify judges whether the image proves quest completion. Confidence is
// clamped to [0,1] and points to [0,100]. The service self-applies the
// confidence-to-verdict rule; if its verdict disagrees with its confidence
// the reported verdict is kept and the divergence logged, since point
// award downstream is gated on the verdict, not raw confidence.
func (v *Verifier) Verify(ctx context.Context, proof Proof) *model.VerificationOutcome {
	raw, err := v.provider.GenerateVisionJSON(ctx, llm.VisionRequest{
		Request: llm.Request{
			Prompt:      buildVerificationPrompt(proof),
			Schema:      verificationSchema(),
			Temperature: 0.3, // consistent evaluation
		},
		Image:    proof.Image,
		MIMEType: proof.MIMEType,
	})
	if err != nil {
		return v.degraded(proof, fmt.Errorf("vision call: %w", err))
	}

	var fields verificationFields
	if err := llm.Decode(raw, &fields); err != nil {
		return v.degraded(proof, err)
	}
	if fields.Confidence == nil || fields.SuggestedPoints == nil || fields.Verdict == "" || fields.Reasoning == "" {
		return v.degraded(proof, fmt.Errorf("response missing required verification fields"))
	}

	confidence := clampFloat(*fields.Confidence, 0, 1)
	points := clampInt(*fields.SuggestedPoints, 0, 100)

	verdict := model.Verdict(fields.Verdict)
	switch verdict {
	case model.VerdictVerified, model.VerdictUnclear, model.VerdictRejected:
	default:
		return v.degraded(proof, fmt.Errorf("unknown verdict %q", fields.Verdict))
	}

	if expected := model.VerdictForConfidence(confidence); expected != verdict {
		v.logger.Warn("verdict disagrees with confidence policy, keeping reported verdict",
			zap.String("quest_title", proof.QuestTitle),
			zap.Float64("confidence", confidence),
			zap.String("reported", string(verdict)),
			zap.String("expected", string(expected)))
	}

	v.logger.Info("proof verified",
		zap.String("quest_title", proof.QuestTitle),
		zap.String("verdict", string(verdict)),
		zap.Float64("confidence", confidence),
		zap.Int("points", points))

	return &model.VerificationOutcome{
		Confidence:      confidence,
		Verdict:         verdict,
		Reasoning:       fields.Reasoning,
		SuggestedPoints: points,
		Observations:    fields.Observations,
	}
}

func (v *Verifier) degraded(proof Proof, err error) *model.VerificationOutcome {
	v.logger.Error("proof verification unavailable, returning unclear outcome",
		zap.String("quest_title", proof.QuestTitle),
		zap.Error(err))

	return &model.VerificationOutcome{
		Confidence:      0.0,
		Verdict:         model.VerdictUnclear,
		Reasoning:       fmt.Sprintf("Error during verification: %v. Please try again.", err),
		SuggestedPoints: 0,
		Observations:    []string{},
	}
}

func verificationSchema() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"confidence_score":    llm.Number("Confidence from 0.0 to 1.0 that the image proves quest completion"),
		"verification_result": llm.StringEnum("Overall verification decision", "Verified", "Rejected", "Unclear"),
		"reasoning":           llm.String("Detailed explanation of the verification decision"),
		"suggested_points":    llm.Integer("Points to award from 0 to 100 based on impact and completion quality"),
		"key_observations":    llm.StringArray("Key things observed in the image"),
	}, "confidence_score", "verification_result", "reasoning", "suggested_points")
}

func buildVerificationPrompt(proof Proof) string {
	note := proof.UserNote
	if note == "" {
		note = "No description provided"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert AI verifier for community impact quests. Your job is to analyze an image submission and determine if it genuinely proves the completion of a quest.

**QUEST INFORMATION:**
- Title: %s
- Description: %s
- Category: %s

**USER'S DESCRIPTION:**
%s

**YOUR TASK:**
Carefully examine the image and evaluate the following:

1. **Authenticity**: Does the image appear to be genuine (not AI-generated, not stock photo)?
2. **Relevance**: Does the image directly relate to the quest objective?
3. **Completion Evidence**: Does the image prove that the quest was actually completed?
4. **Impact Quality**: Based on what you see, how significant is the community impact?
5. **Safety & Appropriateness**: Is the content safe, appropriate, and aligned with positive community values?

**VERIFICATION CRITERIA:**
- Verified (confidence > 0.7): Clear evidence of quest completion with authentic, relevant proof
- Unclear (confidence 0.3-0.7): Some evidence but missing key elements or unclear authenticity
- Rejected (confidence < 0.3): No clear evidence, irrelevant image, or inappropriate content

**POINTS CALCULATION:**
- Exceptional impact with perfect evidence: 80-100 points
- Good impact with solid evidence: 50-79 points
- Moderate impact or partial evidence: 20-49 points
- Minimal/unclear evidence: 0-19 points

**IMPORTANT:**
- Be encouraging but honest in your assessment
- If unsure, provide constructive feedback on what's missing
- Consider the quest category when evaluating impact
- Reward genuine effort and authentic proof

Provide your analysis as JSON with confidence_score, verification_result, reasoning, suggested_points, and key_observations.`,
		proof.QuestTitle, proof.QuestDescription, proof.QuestCategory, note)

	return b.String()
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
