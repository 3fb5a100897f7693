package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// Stage is a step of a single generation run
type Stage string

const (
	StagePromptBuilt Stage = "prompt_built"
	StageRequested   Stage = "requested"
	StageSanitized   Stage = "sanitized"
	StageValidated   Stage = "validated"
	StageFailed      Stage = "failed"
	StageResolved    Stage = "resolved"
)

// Generator runs the prompt, completion, extraction and validation pipeline
// and resolves every failure with a locally synthesized result.
type Generator struct {
	client  CompletionClient
	logger  *zap.Logger
	metrics *Metrics

	mu  sync.Mutex
	rnd *rand.Rand
}

// GeneratorOption customizes a Generator
type GeneratorOption func(*Generator)

// WithRand sets the random source used for fallback times
func WithRand(rnd *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rnd = rnd }
}

// WithMetrics records pipeline outcomes on m
func WithMetrics(m *Metrics) GeneratorOption {
	return func(g *Generator) { g.metrics = m }
}

// NewGenerator creates a new Generator
func NewGenerator(client CompletionClient, logger *zap.Logger, opts ...GeneratorOption) *Generator {
	g := &Generator{
		client: client,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateRecipe always returns a recipe: the model's when every stage
// succeeds, a fallback otherwise.
func (g *Generator) GenerateRecipe(ctx context.Context, req types.GenerationRequest) *types.GeneratedRecipe {
	obj, stage, err := g.run(ctx, KindRecipe, BuildRecipePrompt(req), ChefPersona)
	if err == nil {
		recipe, verr := CoerceRecipe(obj)
		if verr == nil {
			g.resolve(KindRecipe, types.SourceModel)
			return recipe
		}
		stage, err = StageValidated, verr
	}

	g.fail(KindRecipe, stage, err)
	g.mu.Lock()
	recipe := FallbackRecipe(req, g.rnd)
	g.mu.Unlock()
	g.resolve(KindRecipe, types.SourceFallback)
	return recipe
}

// AnalyzeNutrition always returns an analysis. Once a JSON object is
// extracted, coercion cannot fail.
func (g *Generator) AnalyzeNutrition(ctx context.Context, req types.NutritionRequest) *types.NutritionAnalysis {
	obj, stage, err := g.run(ctx, KindNutrition, BuildNutritionPrompt(req), NutritionistPersona)
	if err != nil {
		g.fail(KindNutrition, stage, err)
		g.resolve(KindNutrition, types.SourceFallback)
		return FallbackNutrition(req)
	}

	g.resolve(KindNutrition, types.SourceModel)
	return CoerceNutrition(obj)
}

// run drives a generation up to a parsed JSON object. On failure it reports
// the stage that could not be reached.
func (g *Generator) run(ctx context.Context, kind, prompt, system string) (map[string]interface{}, Stage, error) {
	g.logger.Debug("generation stage", zap.String("kind", kind), zap.String("stage", string(StagePromptBuilt)))

	raw, err := g.client.Complete(ctx, prompt, system)
	if err == nil {
		err = raw.Err()
	}
	if err != nil {
		return nil, StageRequested, err
	}

	text, err := ExtractJSON(raw)
	if err != nil {
		return nil, StageSanitized, err
	}
	obj, err := ParseJSONObject(text)
	if err != nil {
		return nil, StageSanitized, err
	}
	return obj, StageSanitized, nil
}

func (g *Generator) fail(kind string, stage Stage, err error) {
	g.logger.Warn("generation failed, using fallback",
		zap.String("kind", kind),
		zap.String("stage", string(StageFailed)),
		zap.String("failed_stage", string(stage)),
		zap.Error(err))
	g.metrics.ObserveFailure(kind, stage)
}

func (g *Generator) resolve(kind string, source types.Provenance) {
	g.logger.Info("generation resolved",
		zap.String("kind", kind),
		zap.String("stage", string(StageResolved)),
		zap.String("source", string(source)))
	g.metrics.ObserveGeneration(kind, source)
}
