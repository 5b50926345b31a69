package main

import (
	"fmt"
	"strings"

	"bazi-engine/internal/regression"
)

// formatResult arma la línea de un caso; en fallos lista cada campo que difiere.
func formatResult(r regression.CaseResult) string {
	if r.Err != nil {
		return fmt.Sprintf("ERROR %s %s: %v", r.Case, r.Pillars, r.Err)
	}
	if r.OK() {
		return fmt.Sprintf("OK    %s %s -> %s %s", r.Case, r.Pillars, r.Got.Geju, r.Got.Strength)
	}
	return fmt.Sprintf("FAIL  %s %s: %s", r.Case, r.Pillars, strings.Join(mismatches(r), "; "))
}

func mismatches(r regression.CaseResult) []string {
	var out []string
	if !r.GejuOK {
		out = append(out, fmt.Sprintf("格局 esperado %s, obtenido %s", r.Expect.Geju, r.Got.Geju))
	}
	if !r.StrengthOK {
		out = append(out, fmt.Sprintf("强弱 esperado %s, obtenido %s", r.Expect.Strength, r.Got.Strength))
	}
	return out
}

func formatSummary(s regression.Summary) string {
	return fmt.Sprintf("格局: %.1f%% (%d/%d) | 强弱: %.1f%% (%d/%d) | errores: %d",
		s.GejuAccuracy()*100, s.GejuOK, s.Total,
		s.StrengthAccuracy()*100, s.StrengthOK, s.Total,
		s.Errors)
}
