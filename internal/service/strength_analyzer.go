package service

import (
	"fmt"
	"math"
	"strings"

	"bazi-engine/internal/domain"
)

// Umbrales de la razón de apoyo, en porcentaje. Son asimétricos: dominar exige
// más margen que quedar débil.
const (
	extremelyStrongPct = 70
	somewhatStrongPct  = 52
	extremelyWeakPct   = 30
	somewhatWeakPct    = 45

	// drainOverridePct: si 食伤 supera este porcentaje del apoyo, 中和/偏强 baja a 偏弱.
	drainOverridePct = 80
)

// elementRoles son los cinco elementos vistos desde el maestro del día.
type elementRoles struct {
	self      domain.Element // 日主
	generator domain.Element // 印: lo genera
	output    domain.Element // 食伤: lo que genera
	officer   domain.Element // 官杀: lo restringe
	wealth    domain.Element // 财: lo que restringe
}

func rolesFor(day domain.Element) elementRoles {
	return elementRoles{
		self:      day,
		generator: day.GeneratedBy(),
		output:    day.Generates(),
		officer:   day.RestrainedBy(),
		wealth:    day.Restrains(),
	}
}

// cents lleva un puntaje a centésimas enteras, la misma precisión con la que
// EnergyModel redondea. Las comparaciones de umbral se hacen sobre estos enteros.
func cents(v float64) float64 {
	return math.Round(v * 100)
}

// exceeds indica part > whole*pct/100 comparando en centésimas.
func exceeds(part, whole float64, pct int) bool {
	return cents(part)*100 > cents(whole)*float64(pct)
}

// below indica part < whole*pct/100 comparando en centésimas.
func below(part, whole float64, pct int) bool {
	return cents(part)*100 < cents(whole)*float64(pct)
}

// levelRule asigna un nivel cuando apoyo/total cumple el predicado.
type levelRule struct {
	level domain.StrengthLevel
	match func(support, total float64) bool
}

var levelRules = []levelRule{
	{level: domain.LevelExtremelyStrong, match: func(s, t float64) bool { return exceeds(s, t, extremelyStrongPct) }},
	{level: domain.LevelSomewhatStrong, match: func(s, t float64) bool { return exceeds(s, t, somewhatStrongPct) }},
	{level: domain.LevelExtremelyWeak, match: func(s, t float64) bool { return below(s, t, extremelyWeakPct) }},
	{level: domain.LevelSomewhatWeak, match: func(s, t float64) bool { return below(s, t, somewhatWeakPct) }},
}

// LevelFor clasifica la razón support/total en uno de los cinco niveles. Un total
// nulo equivale a razón 0.
func LevelFor(support, total float64) domain.StrengthLevel {
	if cents(total) <= 0 {
		return domain.LevelExtremelyWeak
	}
	for _, r := range levelRules {
		if r.match(support, total) {
			return r.level
		}
	}
	return domain.LevelBalanced
}

// overrideRule corrige el resultado por balance según el estado del patrón.
type overrideRule struct {
	name  string
	match func(g domain.GejuResult) bool
	apply func(res *domain.AnalysisResult, g domain.GejuResult, roles elementRoles)
}

// overrideRules: la reparación del patrón pesa más que la razón numérica. Gana la
// primera que aplica.
var overrideRules = []overrideRule{
	{
		name:  "病药护格",
		match: domain.GejuResult.Broken,
		apply: func(res *domain.AnalysisResult, g domain.GejuResult, roles elementRoles) {
			res.LogicType = domain.LogicPatternProtection
			// 官格被伤必取印
			if strings.Contains(g.Name, "官") {
				promote(res, roles.generator)
			}
		},
	},
	{
		name: "格局护卫",
		match: func(g domain.GejuResult) bool {
			return g.Name == domain.GejuHurtingOfficerCarriesSeal || g.Name == domain.GejuKillingsGenerateSeal
		},
		apply: func(res *domain.AnalysisResult, _ domain.GejuResult, roles elementRoles) {
			res.LogicType = domain.LogicPatternGuard
			promote(res, roles.generator)
		},
	},
}

// promote coloca e como elemento favorable; el elemento que ocupaba e pasa a la
// posición que deja el favorable anterior, así los cuatro siguen siendo distintos.
func promote(res *domain.AnalysisResult, e domain.Element) {
	prev := res.YongShen
	if prev == e {
		return
	}
	switch e {
	case res.XiShen:
		res.XiShen = prev
	case res.JiShen:
		res.JiShen = prev
	case res.ChouShen:
		res.ChouShen = prev
	}
	res.YongShen = e
}

// StrengthAnalyzer juzga la fuerza del maestro del día y deriva los elementos
// favorables y desfavorables.
type StrengthAnalyzer struct{}

// DefaultStrengthAnalyzer permite uso directo sin instanciar.
var DefaultStrengthAnalyzer = StrengthAnalyzer{}

// Analyze combina los puntajes con el patrón. Un total de cero degrada a razón 0.
func (StrengthAnalyzer) Analyze(chart domain.Chart, scores domain.ElementScore, geju domain.GejuResult, tracer *Tracer) domain.AnalysisResult {
	roles := rolesFor(chart.DayElement())

	support := scores.Score(roles.self) + scores.Score(roles.generator)
	drain := scores.Score(roles.output) + scores.Score(roles.wealth) + scores.Score(roles.officer)
	total := scores.Total()
	ratio := 0.0
	if total > 0 {
		ratio = support / total
	}

	level := LevelFor(support, total)

	// 食伤过重修正
	output := scores.Score(roles.output)
	if exceeds(output, support, drainOverridePct) && (level == domain.LevelBalanced || level == domain.LevelSomewhatStrong) {
		level = domain.LevelSomewhatWeak
		tracer.Record(TraceStrength, fmt.Sprintf("检测到食伤[%s %.1f]泄气过重，强弱下调至%s", roles.output, output, level))
	}
	tracer.Record(TraceStrength, fmt.Sprintf("生助[%.1f] vs 泄耗[%.1f], 支持率: %.1f%%, 定性: %s", support, drain, ratio*100, level))

	res := domain.AnalysisResult{
		StrengthLevel: level,
		StrengthScore: round2(ratio * 100),
		LogicType:     domain.LogicBalance,
		Support:       round2(support),
		Drain:         round2(drain),
	}
	if level.Strong() {
		res.YongShen, res.XiShen, res.JiShen, res.ChouShen = roles.officer, roles.wealth, roles.generator, roles.self
	} else {
		// 中和 se resuelve con las reglas de apoyo, igual que los niveles débiles
		res.YongShen, res.XiShen, res.JiShen, res.ChouShen = roles.generator, roles.self, roles.officer, roles.wealth
	}

	for _, r := range overrideRules {
		if r.match(geju) {
			r.apply(&res, geju, roles)
			tracer.Record(TraceStrength, fmt.Sprintf("格局[%s]触发[%s]，用神取%s", geju.Name, r.name, res.YongShen))
			break
		}
	}

	tracer.Record(TraceStrength, fmt.Sprintf("用神%s 喜神%s 忌神%s 仇神%s (%s)", res.YongShen, res.XiShen, res.JiShen, res.ChouShen, res.LogicType))
	return res
}
