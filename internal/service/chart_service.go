package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bazi-engine/internal/domain"
)

// AnalysisRecorder recibe el resultado de cada análisis (métricas).
type AnalysisRecorder interface {
	ObserveAnalysis(geju domain.GejuResult, res domain.AnalysisResult, elapsed time.Duration)
}

// Report reúne las salidas del pipeline para una carta.
type Report struct {
	ID           string                `json:"id"`
	Chart        domain.Chart          `json:"chart"`
	Pillars      string                `json:"pillars"`
	DayMaster    domain.Stem           `json:"day_master"`
	DayElement   domain.Element        `json:"day_element"`
	Scores       domain.ElementScore   `json:"five_elements"`
	Interactions []domain.Interaction  `json:"interactions"`
	Geju         domain.GejuResult     `json:"geju"`
	Analysis     domain.AnalysisResult `json:"analysis"`
	Trace        []TraceEntry          `json:"analysis_trace"`
}

// BatchResult es el resultado de una carta dentro de un lote.
type BatchResult struct {
	Index  int
	Report *Report
	Err    error
}

// ChartService ejecuta el pipeline: energía -> interacciones -> patrón -> fuerza.
type ChartService struct {
	energy   EnergyModel
	detector InteractionDetector
	geju     GejuAnalyzer
	strength StrengthAnalyzer
	logger   *zap.Logger
	recorder AnalysisRecorder
	newID    func() string
}

func NewChartService(logger *zap.Logger, recorder AnalysisRecorder) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartService{
		energy:   DefaultEnergyModel,
		detector: DefaultInteractionDetector,
		geju:     DefaultGejuAnalyzer,
		strength: DefaultStrengthAnalyzer,
		logger:   logger,
		recorder: recorder,
		newID:    uuid.NewString,
	}
}

// Analyze valida la carta y corre el pipeline completo. Una carta incompleta
// devuelve un error que envuelve domain.ErrMalformedChart.
func (s *ChartService) Analyze(ctx context.Context, chart domain.Chart) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if err := chart.Validate(); err != nil {
		return Report{}, fmt.Errorf("validate chart: %w", err)
	}

	start := time.Now()
	tracer := NewTracer(s.logger)

	scores := s.energy.Score(chart, tracer)
	interactions := s.detector.Detect(chart, scores, tracer)
	geju := s.geju.Classify(chart, interactions, tracer)
	analysis := s.strength.Analyze(chart, scores, geju, tracer)

	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.ObserveAnalysis(geju, analysis, elapsed)
	}

	report := Report{
		ID:           s.newID(),
		Chart:        chart,
		Pillars:      chart.String(),
		DayMaster:    chart.DayMaster(),
		DayElement:   chart.DayElement(),
		Scores:       scores,
		Interactions: interactions,
		Geju:         geju,
		Analysis:     analysis,
		Trace:        tracer.Entries(),
	}
	s.logger.Debug("chart analyzed",
		zap.String("report_id", report.ID),
		zap.String("pillars", report.Pillars),
		zap.String("geju", geju.Name),
		zap.String("strength", string(analysis.StrengthLevel)),
		zap.Duration("elapsed", elapsed),
	)
	return report, nil
}

// AnalyzeBatch analiza cartas independientes en paralelo. Los errores de cada carta
// quedan en su BatchResult; solo la cancelación del contexto aborta el lote.
func (s *ChartService) AnalyzeBatch(ctx context.Context, charts []domain.Chart, parallel int) ([]BatchResult, error) {
	if parallel <= 0 {
		parallel = 1
	}
	results := make([]BatchResult, len(charts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, c := range charts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := s.Analyze(gctx, c)
			if err != nil {
				results[i] = BatchResult{Index: i, Err: err}
				return nil
			}
			results[i] = BatchResult{Index: i, Report: &rep}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
