package regression

import (
	"context"
	"strings"

	"bazi-engine/internal/domain"
	"bazi-engine/internal/fixtures"
	"bazi-engine/internal/service"
)

// CaseResult compara lo esperado con lo obtenido para una carta de referencia.
type CaseResult struct {
	Suite      string
	Case       string
	Pillars    string
	Expect     fixtures.Expectation
	Got        fixtures.Expectation
	GejuOK     bool
	StrengthOK bool
	Err        error
}

// OK indica coincidencia de patrón y de fuerza.
func (r CaseResult) OK() bool {
	return r.Err == nil && r.GejuOK && r.StrengthOK
}

// Summary acumula la auditoría de todas las suites.
type Summary struct {
	Total      int
	GejuOK     int
	StrengthOK int
	Errors     int
	Results    []CaseResult
}

func (s Summary) GejuAccuracy() float64 {
	return ratio(s.GejuOK, s.Total)
}

func (s Summary) StrengthAccuracy() float64 {
	return ratio(s.StrengthOK, s.Total)
}

// Passed indica que todas las cartas coincidieron.
func (s Summary) Passed() bool {
	return s.Total > 0 && s.GejuOK == s.Total && s.StrengthOK == s.Total && s.Errors == 0
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// StrengthMatches acepta que un nivel contenga al otro ("偏弱" vs "弱").
func StrengthMatches(expected, actual domain.StrengthLevel) bool {
	e, a := string(expected), string(actual)
	if e == "" || a == "" {
		return e == a
	}
	return strings.Contains(a, e) || strings.Contains(e, a)
}

// Run analiza todas las cartas de las suites en un solo lote y compara el patrón
// (sin el sufijo 格) y el nivel de fuerza.
func Run(ctx context.Context, svc *service.ChartService, suites []fixtures.Suite, parallel int) (Summary, error) {
	var (
		charts  []domain.Chart
		results []CaseResult
	)
	for _, s := range suites {
		for _, c := range s.Cases {
			chart, err := c.Chart()
			results = append(results, CaseResult{
				Suite:   s.Name,
				Case:    c.Name,
				Pillars: c.Pillars,
				Expect:  c.Expect,
				Err:     err,
			})
			charts = append(charts, chart)
		}
	}

	batch, err := svc.AnalyzeBatch(ctx, charts, parallel)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Total: len(results)}
	for i, b := range batch {
		r := &results[i]
		if r.Err == nil {
			r.Err = b.Err
		}
		if r.Err != nil {
			sum.Errors++
			continue
		}
		rep := b.Report
		r.Got = fixtures.Expectation{
			Geju:     rep.Geju.Name,
			Status:   rep.Geju.Status,
			Strength: rep.Analysis.StrengthLevel,
			YongShen: rep.Analysis.YongShen,
			Logic:    rep.Analysis.LogicType,
		}
		r.GejuOK = fixtures.GejuMatches(r.Expect.Geju, r.Got.Geju)
		r.StrengthOK = StrengthMatches(r.Expect.Strength, r.Got.Strength)
		if r.GejuOK {
			sum.GejuOK++
		}
		if r.StrengthOK {
			sum.StrengthOK++
		}
	}
	sum.Results = results
	return sum, nil
}
