package domain

// LifeStage es una de las doce fases de vitalidad (十二长生) de un tronco en una rama.
type LifeStage string

const (
	StageBirth   LifeStage = "长生"
	StageBath    LifeStage = "沐浴"
	StageCrown   LifeStage = "冠带"
	StageOffice  LifeStage = "临官"
	StagePeak    LifeStage = "帝旺"
	StageDecline LifeStage = "衰"
	StageIllness LifeStage = "病"
	StageDeath   LifeStage = "死"
	StageTomb    LifeStage = "墓"
	StageExtinct LifeStage = "绝"
	StageEmbryo  LifeStage = "胎"
	StageNurture LifeStage = "养"
	StageUnknown LifeStage = "未知"
)

// stageOrder es la secuencia de las doce fases a partir de 长生.
var stageOrder = [12]LifeStage{
	StageBirth, StageBath, StageCrown, StageOffice, StagePeak, StageDecline,
	StageIllness, StageDeath, StageTomb, StageExtinct, StageEmbryo, StageNurture,
}

// lifeStageTable: tronco -> rama -> fase. Los troncos yang avanzan por las ramas,
// los yin retroceden; 戊/己 siguen a 丙/丁.
var lifeStageTable = map[Stem]map[Branch]LifeStage{
	StemJia:  walkStages(BranchHai, 1),
	StemBing: walkStages(BranchYin, 1),
	StemWu:   walkStages(BranchYin, 1),
	StemGeng: walkStages(BranchSi, 1),
	StemRen:  walkStages(BranchShen, 1),
	StemYi:   walkStages(BranchWu, -1),
	StemDing: walkStages(BranchYou, -1),
	StemJi:   walkStages(BranchYou, -1),
	StemXin:  walkStages(BranchZi, -1),
	StemGui:  walkStages(BranchMao, -1),
}

// walkStages arma la fila de un tronco partiendo de su rama de 长生; se evalúa una
// sola vez al iniciar el proceso y la tabla resultante es de solo lectura.
func walkStages(birth Branch, dir int) map[Branch]LifeStage {
	row := make(map[Branch]LifeStage, 12)
	start := branchIndex[birth]
	for i, st := range stageOrder {
		row[Branches[((start+dir*i)%12+12)%12]] = st
	}
	return row
}

// LifeStageOf consulta la tabla; un par no tabulado devuelve StageUnknown.
func LifeStageOf(s Stem, b Branch) LifeStage {
	row, ok := lifeStageTable[s]
	if !ok {
		return StageUnknown
	}
	st, ok := row[b]
	if !ok {
		return StageUnknown
	}
	return st
}

// Weak indica las fases sin raíz (死, 绝, 病) que descuentan energía.
func (l LifeStage) Weak() bool {
	return l == StageDeath || l == StageExtinct || l == StageIllness
}
