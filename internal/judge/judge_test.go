package judge

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/commupath/commupath/internal/llm"
	"github.com/commupath/commupath/internal/model"
)

type stubProvider struct {
	responses []stubResponse
	prompts   []string
}

type stubResponse struct {
	raw []byte
	err error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) GenerateJSON(_ context.Context, req llm.Request) ([]byte, error) {
	s.prompts = append(s.prompts, req.Prompt)
	if len(s.responses) == 0 {
		return nil, fmt.Errorf("no scripted response")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next.raw, next.err
}

func (s *stubProvider) GenerateVisionJSON(_ context.Context, _ llm.VisionRequest) ([]byte, error) {
	return nil, fmt.Errorf("not scripted")
}

func TestScore_Normalizes(t *testing.T) {
	provider := &stubProvider{responses: []stubResponse{
		{raw: []byte(`{"score": 85, "reason": "safe and feasible"}`)},
	}}
	j := NewJudge(provider, zap.NewNop())

	result := j.Score(context.Background(), "quest text", RubricSafety)

	if result.Value != 0.85 {
		t.Errorf("expected 85/100 normalized to 0.85, got %v", result.Value)
	}
	if result.Reason != "safe and feasible" {
		t.Errorf("unexpected reason %q", result.Reason)
	}
}

func TestScore_ClampsOutOfRange(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`{"score": 150, "reason": "r"}`, 1.0},
		{`{"score": -20, "reason": "r"}`, 0.0},
	}
	for _, tc := range cases {
		provider := &stubProvider{responses: []stubResponse{{raw: []byte(tc.raw)}}}
		j := NewJudge(provider, zap.NewNop())

		if got := j.Score(context.Background(), "q", RubricSafety).Value; got != tc.want {
			t.Errorf("score %s: expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestScore_FailureUsesOptimisticDefault(t *testing.T) {
	cases := []struct {
		rubric Rubric
		want   float64
	}{
		{RubricSafety, 0.8},
		{RubricAppropriateness, 0.85},
	}
	for _, tc := range cases {
		provider := &stubProvider{responses: []stubResponse{{err: fmt.Errorf("overloaded")}}}
		j := NewJudge(provider, zap.NewNop())

		result := j.Score(context.Background(), "q", tc.rubric)
		if result.Value != tc.want {
			t.Errorf("%s fallback: expected %v, got %v", tc.rubric, tc.want, result.Value)
		}
		if !strings.Contains(result.Reason, "unavailable") {
			t.Errorf("%s fallback reason should note unavailability, got %q", tc.rubric, result.Reason)
		}
	}
}

func TestScore_MissingScoreDegrades(t *testing.T) {
	provider := &stubProvider{responses: []stubResponse{
		{raw: []byte(`{"reason": "no score field"}`)},
	}}
	j := NewJudge(provider, zap.NewNop())

	if got := j.Score(context.Background(), "q", RubricSafety).Value; got != 0.8 {
		t.Errorf("expected safety fallback 0.8, got %v", got)
	}
}

func TestEvaluateQuest(t *testing.T) {
	provider := &stubProvider{responses: []stubResponse{
		{raw: []byte(`{"score": 90, "reason": "safe"}`)},
		{raw: []byte(`{"score": 80, "reason": "inclusive"}`)},
	}}
	j := NewJudge(provider, zap.NewNop())

	quest := model.Quest{
		QuestID:      "quest_ab12cd34",
		Title:        "Clean Up Day",
		Description:  "Organize a neighborhood clean up.",
		Difficulty:   model.DifficultyEasy,
		ImpactMetric: "Collect 20 bags of litter",
		Category:     model.CategoryEnvironment,
	}

	eval, err := j.EvaluateQuest(context.Background(), quest)
	if err != nil {
		t.Fatalf("EvaluateQuest: %v", err)
	}

	if eval.Safety.Value != 0.9 || eval.Appropriateness.Value != 0.8 {
		t.Errorf("unexpected rubric values: %+v", eval)
	}
	if eval.Overall < 0.849 || eval.Overall > 0.851 {
		t.Errorf("expected overall mean 0.85, got %v", eval.Overall)
	}
	if !eval.Passed {
		t.Error("expected 0.9/0.8 to pass the 0.7 threshold")
	}

	// Both prompts embed the quest content.
	if len(provider.prompts) != 2 {
		t.Fatalf("expected 2 rubric calls, got %d", len(provider.prompts))
	}
	for i, p := range provider.prompts {
		if !strings.Contains(p, "Clean Up Day") {
			t.Errorf("prompt %d missing quest title", i)
		}
	}
}

func TestEvaluateQuest_FailsBelowThreshold(t *testing.T) {
	provider := &stubProvider{responses: []stubResponse{
		{raw: []byte(`{"score": 95, "reason": "safe"}`)},
		{raw: []byte(`{"score": 40, "reason": "insensitive phrasing"}`)},
	}}
	j := NewJudge(provider, zap.NewNop())

	eval, err := j.EvaluateQuest(context.Background(), model.Quest{Title: "t"})
	if err != nil {
		t.Fatalf("EvaluateQuest: %v", err)
	}
	if eval.Passed {
		t.Error("one rubric below 0.7 must fail the quest")
	}
}
