package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"bazi-engine/internal/domain"
	"bazi-engine/internal/fixtures"
)

type mockRecorder struct {
	mu    sync.Mutex
	calls int
	last  domain.AnalysisResult
}

func (m *mockRecorder) ObserveAnalysis(_ domain.GejuResult, res domain.AnalysisResult, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.last = res
}

func newTestChartService(rec AnalysisRecorder) *ChartService {
	svc := NewChartService(zap.NewNop(), rec)
	svc.newID = func() string { return "report-1" }
	return svc
}

func TestChartService_AnalyzeFixtures(t *testing.T) {
	suites, err := fixtures.LoadAll()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	svc := newTestChartService(nil)
	for _, s := range suites {
		for _, c := range s.Cases {
			t.Run(s.Name+"/"+c.Name, func(t *testing.T) {
				chart, err := c.Chart()
				if err != nil {
					t.Fatalf("chart: %v", err)
				}
				rep, err := svc.Analyze(context.Background(), chart)
				if err != nil {
					t.Fatalf("analyze: %v", err)
				}
				got := fixtures.Expectation{
					Geju:     rep.Geju.Name,
					Status:   rep.Geju.Status,
					Strength: rep.Analysis.StrengthLevel,
					YongShen: rep.Analysis.YongShen,
					Logic:    rep.Analysis.LogicType,
				}
				if diff := cmp.Diff(c.Expect, got); diff != "" {
					t.Errorf("%s mismatch (-want +got):\n%s", c.Pillars, diff)
				}
			})
		}
	}
}

func TestChartService_AnalyzeReport(t *testing.T) {
	rec := &mockRecorder{}
	svc := newTestChartService(rec)
	chart := mustChart(t, "丁卯 壬寅 乙亥 辛巳")

	rep, err := svc.Analyze(context.Background(), chart)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if rep.ID != "report-1" || rep.Pillars != "丁卯 壬寅 乙亥 辛巳" {
		t.Fatalf("unexpected report header %+v", rep)
	}
	if rep.DayMaster != domain.StemYi || rep.DayElement != domain.Wood {
		t.Fatalf("unexpected day master %s %s", rep.DayMaster, rep.DayElement)
	}
	if len(rep.Interactions) != 3 || rep.Scores.Score(domain.Wood) != 177.5 {
		t.Fatalf("unexpected pipeline output %+v", rep)
	}
	modules := map[string]bool{}
	for _, e := range rep.Trace {
		modules[e.Module] = true
	}
	for _, m := range []string{TraceEnergy, TraceInteraction, TraceGeju, TraceStrength} {
		if !modules[m] {
			t.Fatalf("missing trace module %s", m)
		}
	}
	if rec.calls != 1 || rec.last.StrengthLevel != domain.LevelSomewhatStrong {
		t.Fatalf("expected recorder call, got %+v", rec)
	}
}

func TestChartService_Idempotent(t *testing.T) {
	svc := newTestChartService(nil)
	chart := mustChart(t, "己巳 丙子 丙寅 甲午")

	first, err := svc.Analyze(context.Background(), chart)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	second, err := svc.Analyze(context.Background(), chart)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("analysis not idempotent (-first +second):\n%s", diff)
	}
}

func TestChartService_MalformedChart(t *testing.T) {
	svc := newTestChartService(nil)
	chart := mustChart(t, "丁卯 壬寅 乙亥 辛巳")
	chart.Month.Hidden = nil

	_, err := svc.Analyze(context.Background(), chart)
	if !errors.Is(err, domain.ErrMalformedChart) {
		t.Fatalf("expected ErrMalformedChart, got %v", err)
	}
}

func TestChartService_CanceledContext(t *testing.T) {
	svc := newTestChartService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Analyze(ctx, mustChart(t, "丁卯 壬寅 乙亥 辛巳")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := svc.AnalyzeBatch(ctx, []domain.Chart{mustChart(t, "丁卯 壬寅 乙亥 辛巳")}, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected batch context.Canceled, got %v", err)
	}
}

func TestChartService_AnalyzeBatch(t *testing.T) {
	rec := &mockRecorder{}
	svc := newTestChartService(rec)
	bad := mustChart(t, "庚午 辛巳 乙酉 壬午")
	bad.Day.Stem = ""
	charts := []domain.Chart{
		mustChart(t, "丁卯 壬寅 乙亥 辛巳"),
		bad,
		mustChart(t, "庚午 辛巳 乙酉 壬午"),
	}

	results, err := svc.AnalyzeBatch(context.Background(), charts, 2)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d", i, r.Index)
		}
	}
	if results[0].Err != nil || results[0].Report.Geju.Name != GejuMonthBlade {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if !errors.Is(results[1].Err, domain.ErrMalformedChart) || results[1].Report != nil {
		t.Fatalf("expected malformed second result, got %+v", results[1])
	}
	if results[2].Err != nil || results[2].Report.Geju.Name != "正官格" {
		t.Fatalf("unexpected third result %+v", results[2])
	}
	if rec.calls != 2 {
		t.Fatalf("expected 2 recorded analyses, got %d", rec.calls)
	}
}

func BenchmarkChartServiceAnalyze(b *testing.B) {
	svc := NewChartService(zap.NewNop(), nil)
	chart := mustChart(b, "丁卯 壬寅 乙亥 辛巳")
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Analyze(ctx, chart); err != nil {
			b.Fatal(err)
		}
	}
}
