package quest

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/commupath/commupath/internal/llm"
	"github.com/commupath/commupath/internal/model"
	"github.com/commupath/commupath/internal/places"
)

// candidateLimit is how many ranked places are offered to the model.
const candidateLimit = 3

// placeSource is the slice of place discovery the orchestrator consumes.
type placeSource interface {
	FindNearbyPlaces(ctx context.Context, center model.Coordinates, category model.Category, radius, maxResults int) ([]model.Place, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, bool)
}

// Orchestrator runs the end-to-end quest generation pipeline: discover,
// rank, prompt, select, construct — degrading through traditional and
// hardcoded tiers when a stage is unavailable.
type Orchestrator struct {
	places     placeSource
	provider   llm.Provider
	cfg        model.DiscoveryConfig
	logger     *zap.Logger
	strategies []strategy
}

// request carries one generation request through the strategy chain.
type request struct {
	coords      model.Coordinates
	category    model.Category
	preferences string
}

// strategy is one generation tier with a uniform contract: a result or an
// error that routes to the next tier. Adding or removing a tier is a
// one-line change in NewOrchestrator.
type strategy struct {
	tier model.Tier
	run  func(ctx context.Context, req request) (*model.GenerationOutcome, error)
}

// NewOrchestrator wires the generation pipeline.
func NewOrchestrator(source placeSource, provider llm.Provider, cfg model.DiscoveryConfig, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SearchRadius <= 0 {
		cfg.SearchRadius = 3000
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 5
	}

	o := &Orchestrator{
		places:   source,
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
	o.strategies = []strategy{
		{model.TierPlaceAware, o.generatePlaceAware},
		{model.TierTraditional, o.generateTraditional},
		{model.TierHardcoded, o.generateHardcoded},
	}
	return o
}

// Generate produces a quest for the given location and category. It never
// fails: each tier's error routes to the next, and the hardcoded tier
// always succeeds. Degradation is logged so quality loss is diagnosable.
func (o *Orchestrator) Generate(ctx context.Context, coords model.Coordinates, category model.Category, preferences string) *model.GenerationOutcome {
	req := request{coords: coords, category: category, preferences: preferences}

	for _, s := range o.strategies {
		outcome, err := s.run(ctx, req)
		if err != nil {
			o.logger.Warn("generation tier failed, degrading",
				zap.String("tier", string(s.tier)),
				zap.String("category", string(category)),
				zap.Error(err))
			continue
		}

		o.logger.Info("quest generated",
			zap.String("tier", string(s.tier)),
			zap.String("quest_id", outcome.Quest.QuestID),
			zap.Bool("used_real_place", outcome.Provenance.UsedRealPlace))
		return outcome
	}

	// Unreachable: the hardcoded tier cannot fail. Kept so the driver loop
	// stays total even if the strategy list is edited.
	outcome, _ := o.generateHardcoded(ctx, req)
	return outcome
}

// questFields is the structured field set returned by the generative
// service. LocationIndex is only present on the place-aware path.
type questFields struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"`
	ImpactMetric     string `json:"impact_metric"`
	EstimatedTime    string `json:"estimated_time"`
	CommunityBenefit string `json:"community_benefit"`
	LocationIndex    *int   `json:"location_index"`
}

// validate checks the required fields and resolves the difficulty enum.
func (f questFields) validate() (model.Difficulty, error) {
	if f.Title == "" || f.Description == "" || f.ImpactMetric == "" {
		return "", fmt.Errorf("response missing required quest fields")
	}
	difficulty, err := model.ParseDifficulty(f.Difficulty)
	if err != nil {
		return "", err
	}
	return difficulty, nil
}

// generatePlaceAware anchors the quest to a real discovered place.
func (o *Orchestrator) generatePlaceAware(ctx context.Context, req request) (*model.GenerationOutcome, error) {
	found, err := o.places.FindNearbyPlaces(ctx, req.coords, req.category, o.cfg.SearchRadius, o.cfg.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("place discovery: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no candidate places near %s", req.coords)
	}

	candidates := rankPlaces(found)
	if len(candidates) > candidateLimit {
		candidates = candidates[:candidateLimit]
	}

	raw, err := o.provider.GenerateJSON(ctx, llm.Request{
		Prompt: buildPlaceAwarePrompt(candidates, req.category, req.preferences),
		Schema: placeAwareSchema(len(candidates)),
	})
	if err != nil {
		return nil, fmt.Errorf("place-aware generation: %w", err)
	}

	var fields questFields
	if err := llm.Decode(raw, &fields); err != nil {
		return nil, err
	}
	difficulty, err := fields.validate()
	if err != nil {
		return nil, err
	}
	if fields.LocationIndex == nil {
		return nil, fmt.Errorf("response missing location_index")
	}

	// The model's index is never trusted: a hallucinated out-of-range value
	// is clamped, not faulted on.
	idx := clampIndex(*fields.LocationIndex, len(candidates))
	selected := candidates[idx]

	quest := model.Quest{
		QuestID:          newQuestID(),
		Title:            fields.Title,
		Description:      fields.Description,
		Difficulty:       difficulty,
		ImpactMetric:     fields.ImpactMetric,
		Location:         selected.Coordinates, // exact place, not search center
		Category:         req.category,
		EstimatedTime:    fields.EstimatedTime,
		CommunityBenefit: fields.CommunityBenefit,
	}

	return &model.GenerationOutcome{
		Quest: quest,
		Provenance: model.Provenance{
			Tier:          model.TierPlaceAware,
			UsedRealPlace: true,
			LocationName:  selected.Name,
			Address:       selected.Address,
			PlaceID:       selected.PlaceID,
		},
	}, nil
}

// generateTraditional prompts with raw coordinates and a coarse city label
// when no real place is available.
func (o *Orchestrator) generateTraditional(ctx context.Context, req request) (*model.GenerationOutcome, error) {
	label := cityLabel(req.coords)

	raw, err := o.provider.GenerateJSON(ctx, llm.Request{
		Prompt: buildTraditionalPrompt(req.coords, label, req.category, req.preferences),
		Schema: traditionalSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("traditional generation: %w", err)
	}

	var fields questFields
	if err := llm.Decode(raw, &fields); err != nil {
		return nil, err
	}
	difficulty, err := fields.validate()
	if err != nil {
		return nil, err
	}

	// Best-effort name for provenance only; failure is non-fatal.
	locationName := label
	if name, ok := o.places.ReverseGeocode(ctx, req.coords.Lat, req.coords.Lng); ok {
		locationName = name
	}

	quest := model.Quest{
		QuestID:          newQuestID(),
		Title:            fields.Title,
		Description:      fields.Description,
		Difficulty:       difficulty,
		ImpactMetric:     fields.ImpactMetric,
		Location:         req.coords, // no real place available
		Category:         req.category,
		EstimatedTime:    fields.EstimatedTime,
		CommunityBenefit: fields.CommunityBenefit,
	}

	return &model.GenerationOutcome{
		Quest: quest,
		Provenance: model.Provenance{
			Tier:          model.TierTraditional,
			UsedRealPlace: false,
			LocationName:  locationName,
		},
	}, nil
}

// generateHardcoded returns the static category template. It cannot fail.
func (o *Orchestrator) generateHardcoded(_ context.Context, req request) (*model.GenerationOutcome, error) {
	t := templateFor(req.category)

	quest := model.Quest{
		QuestID:          newQuestID(),
		Title:            t.title,
		Description:      t.description,
		Difficulty:       model.DifficultyMedium,
		ImpactMetric:     t.impactMetric,
		Location:         req.coords,
		Category:         req.category,
		EstimatedTime:    t.estimatedTime,
		CommunityBenefit: "Strengthens community bonds and creates positive local impact",
	}

	return &model.GenerationOutcome{
		Quest: quest,
		Provenance: model.Provenance{
			Tier:          model.TierHardcoded,
			UsedRealPlace: false,
		},
	}, nil
}

// rankPlaces sorts descending by quality score. The sort is stable so that
// equally scored places keep the discovery service's original order.
func rankPlaces(found []model.Place) []model.Place {
	ranked := make([]model.Place, len(found))
	copy(ranked, found)
	sort.SliceStable(ranked, func(i, j int) bool {
		return places.QualityScore(ranked[i]) > places.QualityScore(ranked[j])
	})
	return ranked
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

func newQuestID() string {
	return "quest_" + uuid.NewString()[:8]
}
