package service

import (
	"strings"
	"testing"

	"bazi-engine/internal/domain"
)

var formedOfficial = domain.GejuResult{Name: "正官格", Status: domain.StatusFormed}

// woodDay es una carta con maestro 甲; los puntajes se inyectan en cada caso.
func woodDay(t *testing.T) domain.Chart {
	return mustChart(t, "甲子 丙寅 甲子 丙寅")
}

func woodScores(wood, fire, earth, metal, water float64) domain.ElementScore {
	return domain.NewElementScore(map[domain.Element]float64{
		domain.Wood:  wood,
		domain.Fire:  fire,
		domain.Earth: earth,
		domain.Metal: metal,
		domain.Water: water,
	}, nil)
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		support, total float64
		want           domain.StrengthLevel
	}{
		{95, 100, domain.LevelExtremelyStrong},
		{70.01, 100, domain.LevelExtremelyStrong},
		{70, 100, domain.LevelSomewhatStrong},
		{2.1, 3, domain.LevelSomewhatStrong},
		{52.01, 100, domain.LevelSomewhatStrong},
		{52, 100, domain.LevelBalanced},
		{45, 100, domain.LevelBalanced},
		{44.99, 100, domain.LevelSomewhatWeak},
		{30, 100, domain.LevelSomewhatWeak},
		{0.9, 3, domain.LevelSomewhatWeak},
		{29.99, 100, domain.LevelExtremelyWeak},
		{0, 0, domain.LevelExtremelyWeak},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.support, tc.total); got != tc.want {
			t.Errorf("LevelFor(%v, %v) = %s, want %s", tc.support, tc.total, got, tc.want)
		}
	}
}

func TestAnalyze_BoundaryRatioIsSomewhatStrong(t *testing.T) {
	// apoyo 70 de 100: exactamente 0.70
	res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(40, 0, 10, 20, 30), formedOfficial, nil)
	if res.StrengthLevel != domain.LevelSomewhatStrong {
		t.Fatalf("expected 偏强 at 0.70, got %s", res.StrengthLevel)
	}
	if res.StrengthScore != 70 {
		t.Fatalf("expected score 70, got %v", res.StrengthScore)
	}
	if res.YongShen != domain.Metal || res.XiShen != domain.Earth || res.JiShen != domain.Water || res.ChouShen != domain.Wood {
		t.Fatalf("unexpected strong quadruple %+v", res)
	}
	if res.LogicType != domain.LogicBalance {
		t.Fatalf("expected balance logic, got %s", res.LogicType)
	}
}

func TestAnalyze_BoundaryRatioWithDecimalScores(t *testing.T) {
	// 木0.21 + 水1.89 sobre 3.00: en float64 la división da 0.70000000000000007
	res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(0.21, 0, 0, 0.9, 1.89), formedOfficial, nil)
	if res.StrengthLevel != domain.LevelSomewhatStrong {
		t.Fatalf("expected 偏强 at exactly 70%%, got %s", res.StrengthLevel)
	}
	if res.StrengthScore != 70 {
		t.Fatalf("expected score 70, got %v", res.StrengthScore)
	}
}

func TestAnalyze_DrainOverride(t *testing.T) {
	cases := []struct {
		name        string
		wood, water float64
		fire        float64
		want        domain.StrengthLevel
	}{
		{"exactly eighty percent", 60, 40, 80, domain.LevelSomewhatStrong},
		{"just above eighty percent", 60, 40, 80.01, domain.LevelSomewhatWeak},
		// 11.2*0.8 en float64 es 8.9599999999999991
		{"exactly eighty percent with decimals", 8.4, 2.8, 8.96, domain.LevelSomewhatStrong},
		{"just above eighty percent with decimals", 8.4, 2.8, 8.97, domain.LevelSomewhatWeak},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tracer := NewTracer(nil)
			// razón ~0.556, 偏强 antes de la corrección
			res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(tc.wood, tc.fire, 0, 0, tc.water), formedOfficial, tracer)
			if res.StrengthLevel != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, res.StrengthLevel)
			}
			overridden := false
			for _, m := range tracer.ByModule(TraceStrength) {
				if strings.Contains(m, "泄气过重") {
					overridden = true
				}
			}
			if overridden != (tc.want == domain.LevelSomewhatWeak) {
				t.Fatalf("unexpected override trace: %v", tracer.ByModule(TraceStrength))
			}
		})
	}
}

func TestAnalyze_DrainOverrideLevels(t *testing.T) {
	// 中和 (razón 0.5) con 食伤 45 > 0.8*50 baja a 偏弱
	res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(45, 45, 5, 0, 5), formedOfficial, nil)
	if res.StrengthLevel != domain.LevelSomewhatWeak {
		t.Fatalf("expected 中和 to drop to 偏弱, got %s", res.StrengthLevel)
	}
	// 极弱 no se toca aunque 食伤 supere el apoyo
	res = DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(10, 100, 0, 0, 0), formedOfficial, nil)
	if res.StrengthLevel != domain.LevelExtremelyWeak {
		t.Fatalf("expected 极弱 to stay, got %s", res.StrengthLevel)
	}
}

func TestAnalyze_ZeroTotal(t *testing.T) {
	res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(0, 0, 0, 0, 0), formedOfficial, nil)
	if res.StrengthLevel != domain.LevelExtremelyWeak || res.StrengthScore != 0 {
		t.Fatalf("expected 极弱 with score 0, got %s %v", res.StrengthLevel, res.StrengthScore)
	}
	if res.YongShen != domain.Water || res.XiShen != domain.Wood || res.JiShen != domain.Metal || res.ChouShen != domain.Earth {
		t.Fatalf("unexpected weak quadruple %+v", res)
	}
}

func TestAnalyze_MonotonicInGenerator(t *testing.T) {
	// 水 genera a 甲: subirlo con lo demás fijo no puede bajar la razón ni el nivel
	for _, fire := range []float64{0, 20, 50} {
		prevRank, prevScore := -1, -1.0
		for water := 0.0; water <= 400; water += 7.25 {
			res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(20, fire, 50, 50, water), formedOfficial, nil)
			rank := res.StrengthLevel.Rank()
			if rank < prevRank || res.StrengthScore < prevScore {
				t.Fatalf("fire=%v water=%v: strength went from rank %d (%v) to %s (%v)",
					fire, water, prevRank, prevScore, res.StrengthLevel, res.StrengthScore)
			}
			prevRank, prevScore = rank, res.StrengthScore
		}
	}
}

func TestAnalyze_PatternGuard(t *testing.T) {
	geju := domain.GejuResult{Name: domain.GejuHurtingOfficerCarriesSeal, Status: domain.StatusFormed}
	tracer := NewTracer(nil)

	res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(40, 0, 10, 20, 30), geju, tracer)
	if res.LogicType != domain.LogicPatternGuard {
		t.Fatalf("expected 格局护卫, got %s", res.LogicType)
	}
	if res.YongShen != domain.Water {
		t.Fatalf("expected generator as yong shen, got %s", res.YongShen)
	}
	// 偏强: 金 土 水 木 -> 水 sube y 金 ocupa su lugar
	if res.XiShen != domain.Earth || res.JiShen != domain.Metal || res.ChouShen != domain.Wood {
		t.Fatalf("unexpected quadruple after promote %+v", res)
	}
	found := false
	for _, m := range tracer.ByModule(TraceStrength) {
		if strings.Contains(m, "格局护卫") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected guard trace, got %v", tracer.ByModule(TraceStrength))
	}
}

func TestAnalyze_BrokenPatternProtection(t *testing.T) {
	cases := []struct {
		name string
		geju domain.GejuResult
		yong domain.Element
	}{
		{"official broken takes seal", domain.GejuResult{Name: "正官格", Status: domain.StatusBroken, BreakReason: "伤官见官"}, domain.Water},
		{"eating god broken keeps balance choice", domain.GejuResult{Name: "食神格", Status: domain.StatusBroken, BreakReason: "月令逢冲"}, domain.Metal},
		{"broken wins over guard", domain.GejuResult{Name: domain.GejuKillingsGenerateSeal, Status: domain.StatusBroken}, domain.Metal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := DefaultStrengthAnalyzer.Analyze(woodDay(t), woodScores(40, 0, 10, 20, 30), tc.geju, nil)
			if res.LogicType != domain.LogicPatternProtection {
				t.Fatalf("expected 病药护格, got %s", res.LogicType)
			}
			if res.YongShen != tc.yong {
				t.Fatalf("expected yong %s, got %s", tc.yong, res.YongShen)
			}
		})
	}
}

func TestAnalyze_DayMasterRoles(t *testing.T) {
	// 庚午 辛巳 乙酉 壬午: 乙 muy débil
	chart := mustChart(t, "庚午 辛巳 乙酉 壬午")
	scores := DefaultEnergyModel.Score(chart, nil)
	res := DefaultStrengthAnalyzer.Analyze(chart, scores, formedOfficial, nil)
	if res.StrengthLevel != domain.LevelExtremelyWeak || res.StrengthScore != 2.71 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Support != 10.5 || res.Drain != 377 {
		t.Fatalf("unexpected support/drain %v/%v", res.Support, res.Drain)
	}
}

func TestPromoteKeepsDistinct(t *testing.T) {
	base := domain.AnalysisResult{YongShen: domain.Metal, XiShen: domain.Earth, JiShen: domain.Water, ChouShen: domain.Wood}
	for _, e := range domain.Elements {
		res := base
		promote(&res, e)
		if res.YongShen != e {
			t.Fatalf("promote(%s) left yong %s", e, res.YongShen)
		}
		seen := map[domain.Element]bool{}
		for _, x := range []domain.Element{res.YongShen, res.XiShen, res.JiShen, res.ChouShen} {
			if seen[x] {
				t.Fatalf("promote(%s) produced duplicate %s: %+v", e, x, res)
			}
			seen[x] = true
		}
	}
}
