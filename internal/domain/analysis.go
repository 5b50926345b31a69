package domain

import "strings"

// ElementEnergy es la energía acumulada de un elemento y su fase frente al mes.
type ElementEnergy struct {
	Element Element   `json:"element"`
	Score   float64   `json:"score"`
	Stage   LifeStage `json:"stage"`
}

// ElementScore tiene siempre exactamente las cinco entradas, en el orden de Elements.
type ElementScore struct {
	Entries [5]ElementEnergy `json:"entries"`
}

// NewElementScore arma un ElementScore a partir de puntajes y fases por elemento.
// Los elementos ausentes quedan en cero con fase desconocida.
func NewElementScore(scores map[Element]float64, stages map[Element]LifeStage) ElementScore {
	var es ElementScore
	for i, e := range Elements {
		st, ok := stages[e]
		if !ok {
			st = StageUnknown
		}
		s := scores[e]
		if s < 0 {
			s = 0
		}
		es.Entries[i] = ElementEnergy{Element: e, Score: s, Stage: st}
	}
	return es
}

// Score devuelve el puntaje de e; 0 para un elemento desconocido.
func (s ElementScore) Score(e Element) float64 {
	i := e.Index()
	if i < 0 {
		return 0
	}
	return s.Entries[i].Score
}

// Stage devuelve la fase de e frente a la rama del mes.
func (s ElementScore) Stage(e Element) LifeStage {
	i := e.Index()
	if i < 0 {
		return StageUnknown
	}
	return s.Entries[i].Stage
}

// Total suma los cinco puntajes.
func (s ElementScore) Total() float64 {
	var t float64
	for _, en := range s.Entries {
		t += en.Score
	}
	return t
}

// InteractionKind distingue combinaciones de choques.
type InteractionKind string

const (
	KindCombination InteractionKind = "合"
	KindClash       InteractionKind = "冲"
)

// Interaction es una relación detectada entre dos posiciones de la carta.
// Transform e IsTransformed solo tienen sentido para combinaciones.
type Interaction struct {
	Kind          InteractionKind `json:"type"`
	Source        Position        `json:"source"`
	Target        Position        `json:"target"`
	Desc          string          `json:"desc"`
	Transform     Element         `json:"transform,omitempty"`
	IsTransformed bool            `json:"is_transformed"`
}

// Involves indica si la interacción toca la posición p.
func (i Interaction) Involves(p Position) bool {
	return i.Source == p || i.Target == p
}

// GejuType distingue los ocho patrones internos de los especiales.
type GejuType string

const (
	GejuInnerEight GejuType = "INNER_EIGHT"
	GejuSpecial    GejuType = "SPECIAL"
)

// GejuStatus es el estado del patrón tras la auditoría de ruptura.
type GejuStatus string

const (
	StatusFormed GejuStatus = "成格"
	StatusBroken GejuStatus = "破格"
)

// GejuSource indica de dónde salió el nombre del patrón.
type GejuSource string

const (
	SourceTransparent GejuSource = "透干"
	SourceMainQi      GejuSource = "本气"
)

// Nombres compuestos reconocidos; no llevan el sufijo 格.
const (
	GejuHurtingOfficerCarriesSeal = "伤官佩印"
	GejuKillingsGenerateSeal      = "杀印相生"
	GejuEatingGodGeneratesWealth  = "食神生财"

	GejuSuffix = "格"
)

// GejuResult es la clasificación estructural de la carta.
type GejuResult struct {
	Name        string     `json:"name"`
	Type        GejuType   `json:"type"`
	Status      GejuStatus `json:"status"`
	BreakReason string     `json:"break_reason,omitempty"`
	Role        TenGod     `json:"role"`
	Source      GejuSource `json:"source"`
	Detail      string     `json:"detail"`
}

// Broken indica si la auditoría marcó el patrón como roto.
func (g GejuResult) Broken() bool { return g.Status == StatusBroken }

// StatusText devuelve el estado con la razón de ruptura, p. ej. "破格(伤官见官)".
func (g GejuResult) StatusText() string {
	if g.Broken() && g.BreakReason != "" {
		return string(g.Status) + "(" + g.BreakReason + ")"
	}
	return string(g.Status)
}

// IsCompound indica si name es uno de los nombres compuestos reconocidos.
func IsCompound(name string) bool {
	switch strings.TrimSuffix(name, GejuSuffix) {
	case GejuHurtingOfficerCarriesSeal, GejuKillingsGenerateSeal, GejuEatingGodGeneratesWealth:
		return true
	}
	return false
}

// StrengthLevel es la escala ordenada de fuerza del maestro del día.
type StrengthLevel string

const (
	LevelExtremelyStrong StrengthLevel = "极强"
	LevelSomewhatStrong  StrengthLevel = "偏强"
	LevelBalanced        StrengthLevel = "中和"
	LevelSomewhatWeak    StrengthLevel = "偏弱"
	LevelExtremelyWeak   StrengthLevel = "极弱"
)

// Rank ordena los niveles de más débil (0) a más fuerte (4).
func (l StrengthLevel) Rank() int {
	switch l {
	case LevelExtremelyWeak:
		return 0
	case LevelSomewhatWeak:
		return 1
	case LevelBalanced:
		return 2
	case LevelSomewhatStrong:
		return 3
	case LevelExtremelyStrong:
		return 4
	}
	return -1
}

// Strong indica 极强 o 偏强.
func (l StrengthLevel) Strong() bool {
	return l == LevelExtremelyStrong || l == LevelSomewhatStrong
}

// LogicType indica qué rama de reglas fijó el elemento favorable.
type LogicType string

const (
	LogicBalance           LogicType = "扶抑平衡"
	LogicPatternProtection LogicType = "病药护格"
	LogicPatternGuard      LogicType = "格局护卫"
)

// AnalysisResult es el juicio final de fuerza y elementos favorables.
type AnalysisResult struct {
	StrengthLevel StrengthLevel `json:"strength_level"`
	StrengthScore float64       `json:"strength_score"`
	YongShen      Element       `json:"yong_shen"`
	XiShen        Element       `json:"xi_shen"`
	JiShen        Element       `json:"ji_shen"`
	ChouShen      Element       `json:"chou_shen"`
	LogicType     LogicType     `json:"logic_type"`
	Support       float64       `json:"support"`
	Drain         float64       `json:"drain"`
}
