package service

import (
	"fmt"

	"bazi-engine/internal/domain"
)

type stemPair [2]domain.Stem
type branchPair [2]domain.Branch

// 天干五合: cada par se transforma nominalmente en un elemento.
var stemCombinations = map[stemPair]domain.Element{
	{domain.StemJia, domain.StemJi}:   domain.Earth,
	{domain.StemYi, domain.StemGeng}:  domain.Metal,
	{domain.StemBing, domain.StemXin}: domain.Water,
	{domain.StemDing, domain.StemRen}: domain.Wood,
	{domain.StemWu, domain.StemGui}:   domain.Fire,
}

// 地支六合.
var branchCombinations = map[branchPair]domain.Element{
	{domain.BranchZi, domain.BranchChou}:  domain.Earth,
	{domain.BranchYin, domain.BranchHai}:  domain.Wood,
	{domain.BranchMao, domain.BranchXu}:   domain.Fire,
	{domain.BranchChen, domain.BranchYou}: domain.Metal,
	{domain.BranchSi, domain.BranchShen}:  domain.Water,
	{domain.BranchWu, domain.BranchWei}:   domain.Earth,
}

// 地支六冲.
var branchClashes = map[branchPair]struct{}{
	{domain.BranchZi, domain.BranchWu}:    {},
	{domain.BranchChou, domain.BranchWei}: {},
	{domain.BranchYin, domain.BranchShen}: {},
	{domain.BranchMao, domain.BranchYou}:  {},
	{domain.BranchChen, domain.BranchXu}:  {},
	{domain.BranchSi, domain.BranchHai}:   {},
}

func lookupStemCombination(a, b domain.Stem) (domain.Element, bool) {
	if e, ok := stemCombinations[stemPair{a, b}]; ok {
		return e, true
	}
	e, ok := stemCombinations[stemPair{b, a}]
	return e, ok
}

func lookupBranchCombination(a, b domain.Branch) (domain.Element, bool) {
	if e, ok := branchCombinations[branchPair{a, b}]; ok {
		return e, true
	}
	e, ok := branchCombinations[branchPair{b, a}]
	return e, ok
}

func isBranchClash(a, b domain.Branch) bool {
	if _, ok := branchClashes[branchPair{a, b}]; ok {
		return true
	}
	_, ok := branchClashes[branchPair{b, a}]
	return ok
}

// InteractionDetector detecta combinaciones y choques entre pares de pilares.
type InteractionDetector struct{}

// DefaultInteractionDetector permite uso directo sin instanciar.
var DefaultInteractionDetector = InteractionDetector{}

// Detect recorre primero los pares de troncos y luego los de ramas, de izquierda a
// derecha (año, mes, día, hora). El orden del resultado es estable.
func (InteractionDetector) Detect(chart domain.Chart, scores domain.ElementScore, tracer *Tracer) []domain.Interaction {
	pillars := chart.Pillars()
	monthElem := chart.Month.Branch.Element()
	var out []domain.Interaction

	for i := 0; i < len(pillars); i++ {
		for j := i + 1; j < len(pillars); j++ {
			a, b := pillars[i].Stem, pillars[j].Stem
			if target, ok := lookupStemCombination(a, b); ok {
				in := combination(domain.StemPosition(i), domain.StemPosition(j), string(a), string(b), target, monthElem, scores)
				out = append(out, in)
				traceCombination(tracer, in, scores, monthElem)
			}
		}
	}

	for i := 0; i < len(pillars); i++ {
		for j := i + 1; j < len(pillars); j++ {
			a, b := pillars[i].Branch, pillars[j].Branch
			if target, ok := lookupBranchCombination(a, b); ok {
				in := combination(domain.BranchPosition(i), domain.BranchPosition(j), string(a), string(b), target, monthElem, scores)
				out = append(out, in)
				traceCombination(tracer, in, scores, monthElem)
			}
			if isBranchClash(a, b) {
				in := domain.Interaction{
					Kind:   domain.KindClash,
					Source: domain.BranchPosition(i),
					Target: domain.BranchPosition(j),
					Desc:   fmt.Sprintf("%s%s与%s%s相冲(%s%s冲)", domain.BranchPosition(i), a, domain.BranchPosition(j), b, a, b),
				}
				out = append(out, in)
				tracer.Record(TraceInteraction, in.Desc)
			}
		}
	}
	return out
}

// combination arma la interacción de un par que combina; la descripción nombra a
// ambos participantes en orden de recorrido.
func combination(src, dst domain.Position, a, b string, target, monthElem domain.Element, scores domain.ElementScore) domain.Interaction {
	return domain.Interaction{
		Kind:          domain.KindCombination,
		Source:        src,
		Target:        dst,
		Desc:          fmt.Sprintf("%s%s与%s%s合(%s%s合化%s)", src, a, dst, b, a, b, target),
		Transform:     target,
		IsTransformed: transforms(target, monthElem, scores),
	}
}

// transforms decide si una combinación llega a transformarse: el mes debe apoyar al
// elemento resultante (mismo elemento o su generador) y su puntaje debe superar la
// suma de quien lo restringe y de quien lo drena.
func transforms(target, monthElem domain.Element, scores domain.ElementScore) bool {
	if monthElem != target && monthElem != target.GeneratedBy() {
		return false
	}
	opposing := scores.Score(target.RestrainedBy()) + scores.Score(target.Generates())
	return scores.Score(target) > opposing
}

func traceCombination(tracer *Tracer, in domain.Interaction, scores domain.ElementScore, monthElem domain.Element) {
	if in.IsTransformed {
		tracer.Record(TraceInteraction, fmt.Sprintf("%s，月令%s得助，%s[%.1f]胜过克泄，合化成功", in.Desc, monthElem, in.Transform, scores.Score(in.Transform)))
		return
	}
	tracer.Record(TraceInteraction, fmt.Sprintf("%s，%s[%.1f]不足或月令%s不助，合而不化", in.Desc, in.Transform, scores.Score(in.Transform), monthElem))
}
