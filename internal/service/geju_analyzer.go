package service

import (
	"fmt"
	"strings"

	"bazi-engine/internal/domain"
)

// Patrones de respaldo cuando el qi principal del mes es un rol par: la energía
// rival nunca nombra un patrón estándar por sí sola.
const (
	GejuEstablishedSalary = "建禄格"
	GejuMonthBlade        = "月刃格"
)

// gejuState es el borrador que recorren las cadenas de reglas.
type gejuState struct {
	chart    domain.Chart
	day      domain.Stem
	visible  [3]domain.TenGod
	role     domain.TenGod
	name     string
	typ      domain.GejuType
	source   domain.GejuSource
	detail   string
	terminal bool
	compound bool
	status   domain.GejuStatus
	reason   string
}

// gejuRule es un par predicado/acción; en cada cadena gana la primera que aplica.
type gejuRule struct {
	name  string
	apply func(s *gejuState) bool
}

// selectionRules fija el rol del patrón.
var selectionRules = []gejuRule{
	{name: "透干取格", apply: selectTransparent},
	{name: "本气比劫", apply: selectPeerFallback},
	{name: "本气取格", apply: selectMainQi},
}

// visibleStems son los troncos que se revisan, en este orden: año, mes, hora.
var visibleStems = [3]domain.Position{domain.PosYearStem, domain.PosMonthStem, domain.PosTimeStem}

func stemsToCheck(c domain.Chart) [3]domain.Stem {
	return [3]domain.Stem{c.Year.Stem, c.Month.Stem, c.Time.Stem}
}

func selectTransparent(s *gejuState) bool {
	hidden := s.chart.Month.Hidden
	for i, stem := range stemsToCheck(s.chart) {
		if !containsStem(hidden, stem) {
			continue
		}
		role := s.visible[i]
		if !role.FormsPattern() {
			continue
		}
		s.role = role
		s.source = domain.SourceTransparent
		s.detail = fmt.Sprintf("月令%s藏干[%s]透出于%s，为%s", s.chart.Month.Branch, stem, visibleStems[i], role)
		return true
	}
	return false
}

func selectPeerFallback(s *gejuState) bool {
	main := mainQi(s.chart)
	role := domain.TenGodOf(s.day, main)
	if !role.IsPeer() {
		return false
	}
	s.role = role
	s.source = domain.SourceMainQi
	s.typ = domain.GejuSpecial
	s.terminal = true
	if role == domain.TenGodPeer {
		s.name = GejuEstablishedSalary
	} else {
		s.name = GejuMonthBlade
	}
	s.detail = fmt.Sprintf("月令%s本气%s为%s，比劫不入正格，取%s", s.chart.Month.Branch, main, role, s.name)
	return true
}

func selectMainQi(s *gejuState) bool {
	main := mainQi(s.chart)
	s.role = domain.TenGodOf(s.day, main)
	s.source = domain.SourceMainQi
	s.detail = fmt.Sprintf("月令%s无透干，取本气%s为%s", s.chart.Month.Branch, main, s.role)
	return true
}

// compoundRule describe una combinación de imágenes (相神) que refuerza el patrón.
// Con visibleAnchor el ancla también puede ser un tronco visible y no solo el rol
// del patrón. Solo 伤官佩印 lo usa: 杀印相生 y 食神生财 exigen que 七杀 o 食神
// sea el rol del patrón, así un 正官格 o 正印格 con 七杀 visible conserva su nombre.
type compoundRule struct {
	name          string
	anchor        func(domain.TenGod) bool
	partner       func(domain.TenGod) bool
	visibleAnchor bool
}

var compoundRules = []compoundRule{
	{name: domain.GejuHurtingOfficerCarriesSeal, anchor: domain.TenGod.IsHurtingOfficer, partner: domain.TenGod.IsSeal, visibleAnchor: true},
	{name: domain.GejuKillingsGenerateSeal, anchor: domain.TenGod.IsKillings, partner: domain.TenGod.IsSeal},
	{name: domain.GejuEatingGodGeneratesWealth, anchor: domain.TenGod.IsEatingGod, partner: domain.TenGod.IsWealth},
}

// upgradeCompound prueba primero las reglas ancladas en el rol del patrón y luego
// las ancladas en un tronco visible. La pareja siempre debe estar visible.
func upgradeCompound(s *gejuState) {
	if s.terminal {
		return
	}
	passes := []func(r compoundRule) bool{
		func(r compoundRule) bool { return r.anchor(s.role) },
		func(r compoundRule) bool { return r.visibleAnchor && anyRole(s.visible[:], r.anchor) },
	}
	for _, anchored := range passes {
		for _, r := range compoundRules {
			if anchored(r) && anyRole(s.visible[:], r.partner) {
				s.name = r.name
				s.compound = true
				s.detail += fmt.Sprintf("；相神配合，升为%s", r.name)
				return
			}
		}
	}
}

// breakRule devuelve la razón de ruptura si aplica.
type breakRule struct {
	name  string
	check func(s *gejuState, interactions []domain.Interaction) (string, bool)
}

// breakRules se evalúan en orden; el resultado conserva solo la primera razón.
var breakRules = []breakRule{
	{name: "伤官见官", check: hurtingOfficerMeetsOfficial},
	{name: "月令逢冲", check: monthBranchClashed},
}

func hurtingOfficerMeetsOfficial(s *gejuState, _ []domain.Interaction) (string, bool) {
	if s.role.IsOfficial() && anyRole(s.visible[:], domain.TenGod.IsHurtingOfficer) {
		return "伤官见官", true
	}
	return "", false
}

func monthBranchClashed(_ *gejuState, interactions []domain.Interaction) (string, bool) {
	for _, in := range interactions {
		if in.Kind == domain.KindClash && in.Involves(domain.PosMonthBranch) {
			return "月令逢冲:" + in.Desc, true
		}
	}
	return "", false
}

// GejuAnalyzer clasifica la carta en su patrón gobernante (格局).
type GejuAnalyzer struct{}

// DefaultGejuAnalyzer permite uso directo sin instanciar.
var DefaultGejuAnalyzer = GejuAnalyzer{}

// Classify aplica selección, mejora compuesta, normalización del nombre y auditoría
// de ruptura, en ese orden.
func (GejuAnalyzer) Classify(chart domain.Chart, interactions []domain.Interaction, tracer *Tracer) domain.GejuResult {
	s := &gejuState{
		chart:  chart,
		day:    chart.DayMaster(),
		typ:    domain.GejuInnerEight,
		status: domain.StatusFormed,
	}
	for i, stem := range stemsToCheck(chart) {
		s.visible[i] = domain.TenGodOf(s.day, stem)
	}

	rule := ""
	for _, r := range selectionRules {
		if r.apply(s) {
			rule = r.name
			break
		}
	}
	if s.name == "" {
		s.name = string(s.role)
	}

	upgradeCompound(s)

	if !s.compound && !s.terminal && !strings.HasSuffix(s.name, domain.GejuSuffix) {
		s.name += domain.GejuSuffix
	}
	if s.name == domain.GejuSuffix {
		// rol vacío: solo ocurre con una carta fuera de las tablas
		s.name = "杂气" + domain.GejuSuffix
	}
	tracer.Record(TraceGeju, fmt.Sprintf("[%s] %s，定格为[%s]", rule, s.detail, s.name))

	for _, r := range breakRules {
		if reason, ok := r.check(s, interactions); ok {
			s.status = domain.StatusBroken
			s.reason = reason
			tracer.Record(TraceGeju, fmt.Sprintf("[%s] 格局[%s]因%s而破损", r.name, s.name, reason))
			break
		}
	}

	return domain.GejuResult{
		Name:        s.name,
		Type:        s.typ,
		Status:      s.status,
		BreakReason: s.reason,
		Role:        s.role,
		Source:      s.source,
		Detail:      s.detail,
	}
}

func mainQi(c domain.Chart) domain.Stem {
	if len(c.Month.Hidden) == 0 {
		return ""
	}
	return c.Month.Hidden[0]
}

func containsStem(list []domain.Stem, s domain.Stem) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func anyRole(roles []domain.TenGod, pred func(domain.TenGod) bool) bool {
	for _, r := range roles {
		if pred(r) {
			return true
		}
	}
	return false
}
