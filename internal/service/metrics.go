package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// Generation kinds used as metric labels and log fields
const (
	KindRecipe    = "recipe"
	KindNutrition = "nutrition"
)

// Metrics holds the Prometheus collectors of the generation pipeline.
// A nil *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	generations              *prometheus.CounterVec
	stageFailures            *prometheus.CounterVec
	nutritionPersistFailures prometheus.Counter
}

// NewMetrics registers the pipeline collectors on a dedicated registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "recipes",
				Name:      "generation_total",
				Help:      "Resolved generations by kind and provenance",
			},
			[]string{"kind", "source"},
		),
		stageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "recipes",
				Name:      "generation_failures_total",
				Help:      "Pipeline failures by kind and failing stage",
			},
			[]string{"kind", "stage"},
		),
		nutritionPersistFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "recipes",
				Name:      "nutrition_persist_failures_total",
				Help:      "Nutrition analyses returned unpersisted after a store failure",
			},
		),
	}
}

// ObserveGeneration counts a resolved generation
func (m *Metrics) ObserveGeneration(kind string, source types.Provenance) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(kind, string(source)).Inc()
}

// ObserveFailure counts a pipeline failure at the given stage
func (m *Metrics) ObserveFailure(kind string, stage Stage) {
	if m == nil {
		return
	}
	m.stageFailures.WithLabelValues(kind, string(stage)).Inc()
}

// NutritionPersistFailed counts a degraded nutrition result
func (m *Metrics) NutritionPersistFailed() {
	if m == nil {
		return
	}
	m.nutritionPersistFailures.Inc()
}
