package main

import (
	"errors"
	"strings"
	"testing"

	"bazi-engine/internal/domain"
	"bazi-engine/internal/fixtures"
	"bazi-engine/internal/regression"
)

func TestFormatResult(t *testing.T) {
	base := regression.CaseResult{
		Case:    "geng-wu-1990",
		Pillars: "庚午 辛巳 乙酉 壬午",
		Expect:  fixtures.Expectation{Geju: "正官格", Strength: domain.LevelExtremelyWeak},
		Got:     fixtures.Expectation{Geju: "正官格", Strength: domain.LevelExtremelyWeak},
	}

	tests := []struct {
		name  string
		alter func(*regression.CaseResult)
		want  []string
		skip  []string
	}{
		{
			name:  "ok",
			alter: func(r *regression.CaseResult) { r.GejuOK, r.StrengthOK = true, true },
			want:  []string{"OK", "正官格 极弱"},
		},
		{
			name: "strength mismatch",
			alter: func(r *regression.CaseResult) {
				r.GejuOK = true
				r.Got.Strength = domain.LevelBalanced
			},
			want: []string{"FAIL", "强弱 esperado 极弱, obtenido 中和"},
			skip: []string{"格局 esperado"},
		},
		{
			name: "both mismatch",
			alter: func(r *regression.CaseResult) {
				r.Got.Geju = "七杀格"
				r.Got.Strength = domain.LevelBalanced
			},
			want: []string{"格局 esperado 正官格, obtenido 七杀格", "; 强弱"},
		},
		{
			name:  "error",
			alter: func(r *regression.CaseResult) { r.Err = errors.New("boom") },
			want:  []string{"ERROR", "boom"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.alter(&r)
			got := formatResult(r)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Fatalf("expected %q in %q", w, got)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(got, s) {
					t.Fatalf("unexpected %q in %q", s, got)
				}
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	s := regression.Summary{Total: 4, GejuOK: 3, StrengthOK: 4, Errors: 1}
	got := formatSummary(s)
	want := "格局: 75.0% (3/4) | 强弱: 100.0% (4/4) | errores: 1"
	if got != want {
		t.Fatalf("formatSummary() = %q, want %q", got, want)
	}
}

func TestLoadSuites(t *testing.T) {
	all, err := loadSuites("")
	if err != nil || len(all) < 2 {
		t.Fatalf("expected every suite, got %d (%v)", len(all), err)
	}
	one, err := loadSuites("breakage")
	if err != nil || len(one) != 1 || one[0].Name != "breakage" {
		t.Fatalf("unexpected single suite %+v (%v)", one, err)
	}
	if _, err := loadSuites("missing"); err == nil {
		t.Fatalf("expected error for unknown suite")
	}
}
