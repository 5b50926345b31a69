package regression

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"bazi-engine/internal/domain"
	"bazi-engine/internal/fixtures"
	"bazi-engine/internal/service"
)

func TestRunEmbeddedSuites(t *testing.T) {
	suites, err := fixtures.LoadAll()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	svc := service.NewChartService(zap.NewNop(), nil)

	sum, err := Run(context.Background(), svc, suites, 4)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !sum.Passed() {
		for _, r := range sum.Results {
			if !r.OK() {
				t.Errorf("%s/%s: expected %+v, got %+v (err=%v)", r.Suite, r.Case, r.Expect, r.Got, r.Err)
			}
		}
		t.Fatalf("expected every reference chart to match")
	}
	if sum.GejuAccuracy() != 1 || sum.StrengthAccuracy() != 1 {
		t.Fatalf("unexpected accuracy %v/%v", sum.GejuAccuracy(), sum.StrengthAccuracy())
	}
}

func TestRunCountsMismatchesAndErrors(t *testing.T) {
	suites := []fixtures.Suite{{
		Name: "custom",
		Cases: []fixtures.Case{
			{Name: "match", Pillars: "庚午 辛巳 乙酉 壬午", Expect: fixtures.Expectation{Geju: "正官", Strength: "弱"}},
			{Name: "wrong", Pillars: "庚午 辛巳 乙酉 壬午", Expect: fixtures.Expectation{Geju: "七杀格", Strength: "极强"}},
			{Name: "broken", Pillars: "庚午 辛巳", Expect: fixtures.Expectation{Geju: "正官格"}},
		},
	}}
	svc := service.NewChartService(zap.NewNop(), nil)

	sum, err := Run(context.Background(), svc, suites, 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Total != 3 || sum.GejuOK != 1 || sum.StrengthOK != 1 || sum.Errors != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if !sum.Results[0].OK() || sum.Results[1].OK() {
		t.Fatalf("unexpected per-case results %+v", sum.Results)
	}
	if !errors.Is(sum.Results[2].Err, domain.ErrMalformedChart) {
		t.Fatalf("expected malformed chart error, got %v", sum.Results[2].Err)
	}
	if sum.Passed() {
		t.Fatalf("summary with mismatches must not pass")
	}
}

func TestStrengthMatches(t *testing.T) {
	cases := []struct {
		expected, actual domain.StrengthLevel
		want             bool
	}{
		{domain.LevelSomewhatWeak, domain.LevelSomewhatWeak, true},
		{"弱", domain.LevelExtremelyWeak, true},
		{domain.LevelSomewhatStrong, domain.LevelExtremelyStrong, false},
		{"", domain.LevelBalanced, false},
	}
	for _, tc := range cases {
		if got := StrengthMatches(tc.expected, tc.actual); got != tc.want {
			t.Errorf("StrengthMatches(%s, %s) = %v, want %v", tc.expected, tc.actual, got, tc.want)
		}
	}
}
