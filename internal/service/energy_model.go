package service

import (
	"fmt"
	"math"

	"bazi-engine/internal/domain"
)

const baseScore = 10.0

// Pesos posicionales de los troncos visibles: año, mes, día, hora. El tronco del
// día solo aporta su energía residual.
var stemWeights = [4]float64{1.0, 1.2, 0.5, 1.0}

// Pesos de las ramas (通根): la rama del mes (月令) domina.
var branchWeights = [4]float64{1.0, 4.0, 1.5, 1.0}

// Pesos por rol dentro de los troncos ocultos: principal, medio, residual.
var rootWeights = [3]float64{3.0, 1.5, 1.0}

var rootLabels = [3]string{"本气", "中气", "余气"}

// weakStageFactor es lo que conserva un elemento en fase 死/绝/病 respecto del mes.
const weakStageFactor = 0.7

// EnergyModel cuantifica la energía de los cinco elementos.
type EnergyModel struct{}

// DefaultEnergyModel permite uso directo sin instanciar.
var DefaultEnergyModel = EnergyModel{}

// Score calcula el puntaje y la fase de cada elemento. Es pura: la misma carta
// produce siempre el mismo resultado.
func (EnergyModel) Score(chart domain.Chart, tracer *Tracer) domain.ElementScore {
	scores := make(map[domain.Element]float64, len(domain.Elements))
	stages := make(map[domain.Element]domain.LifeStage, len(domain.Elements))
	dayElem := chart.DayElement()
	pillars := chart.Pillars()

	// 1. troncos visibles
	for i, p := range pillars {
		e := p.Stem.Element()
		if e == "" {
			continue
		}
		scores[e] += baseScore * stemWeights[i]
	}

	// 2. raíces en los troncos ocultos
	for i, p := range pillars {
		for j, h := range p.Hidden {
			if j >= len(rootWeights) {
				break
			}
			e := h.Element()
			if e == "" {
				continue
			}
			v := baseScore * branchWeights[i] * rootWeights[j]
			scores[e] += v
			tracer.Record(TraceEnergy, fmt.Sprintf("%s%s藏%s(%s)，%s通根 +%.1f",
				domain.BranchPosition(i), p.Branch, h, rootLabels[j], e, v))
		}
	}

	// 3. fase de vida del tronco canónico frente al mes
	month := chart.Month.Branch
	for _, e := range domain.Elements {
		st := domain.LifeStageOf(e.CanonicalStem(), month)
		stages[e] = st
		if st.Weak() {
			old := scores[e]
			scores[e] = old * weakStageFactor
			if e == dayElem {
				tracer.Record(TraceEnergy, fmt.Sprintf("日主处于月令[%s]地，属于'根本极轻'，分值修正: %.1f -> %.1f", st, old, scores[e]))
			} else {
				tracer.Record(TraceEnergy, fmt.Sprintf("%s在月令%s处[%s]地，分值修正: %.1f -> %.1f", e, month, st, old, scores[e]))
			}
		}
	}

	for e, s := range scores {
		scores[e] = round2(s)
	}
	return domain.NewElementScore(scores, stages)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
