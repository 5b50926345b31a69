package domain

// Stem es un tronco celeste (天干).
type Stem string

const (
	StemJia  Stem = "甲"
	StemYi   Stem = "乙"
	StemBing Stem = "丙"
	StemDing Stem = "丁"
	StemWu   Stem = "戊"
	StemJi   Stem = "己"
	StemGeng Stem = "庚"
	StemXin  Stem = "辛"
	StemRen  Stem = "壬"
	StemGui  Stem = "癸"
)

// Stems en orden del ciclo sexagenario; los índices pares son yang.
var Stems = [10]Stem{StemJia, StemYi, StemBing, StemDing, StemWu, StemJi, StemGeng, StemXin, StemRen, StemGui}

// Branch es una rama terrestre (地支).
type Branch string

const (
	BranchZi   Branch = "子"
	BranchChou Branch = "丑"
	BranchYin  Branch = "寅"
	BranchMao  Branch = "卯"
	BranchChen Branch = "辰"
	BranchSi   Branch = "巳"
	BranchWu   Branch = "午"
	BranchWei  Branch = "未"
	BranchShen Branch = "申"
	BranchYou  Branch = "酉"
	BranchXu   Branch = "戌"
	BranchHai  Branch = "亥"
)

var Branches = [12]Branch{
	BranchZi, BranchChou, BranchYin, BranchMao, BranchChen, BranchSi,
	BranchWu, BranchWei, BranchShen, BranchYou, BranchXu, BranchHai,
}

var stemIndex = func() map[Stem]int {
	m := make(map[Stem]int, len(Stems))
	for i, s := range Stems {
		m[s] = i
	}
	return m
}()

var branchIndex = func() map[Branch]int {
	m := make(map[Branch]int, len(Branches))
	for i, b := range Branches {
		m[b] = i
	}
	return m
}()

// hiddenStems es la tabla estándar de troncos ocultos: principal, medio, residual.
var hiddenStems = map[Branch][]Stem{
	BranchZi:   {StemGui},
	BranchChou: {StemJi, StemGui, StemXin},
	BranchYin:  {StemJia, StemBing, StemWu},
	BranchMao:  {StemYi},
	BranchChen: {StemWu, StemYi, StemGui},
	BranchSi:   {StemBing, StemGeng, StemWu},
	BranchWu:   {StemDing, StemJi},
	BranchWei:  {StemJi, StemDing, StemYi},
	BranchShen: {StemGeng, StemRen, StemWu},
	BranchYou:  {StemXin},
	BranchXu:   {StemWu, StemXin, StemDing},
	BranchHai:  {StemRen, StemJia},
}

// Valid indica si s es uno de los diez troncos.
func (s Stem) Valid() bool {
	_, ok := stemIndex[s]
	return ok
}

// Element devuelve el elemento del tronco, o "" si el tronco es desconocido.
func (s Stem) Element() Element {
	i, ok := stemIndex[s]
	if !ok {
		return ""
	}
	return Elements[i/2]
}

// Yang indica la polaridad del tronco.
func (s Stem) Yang() bool {
	i, ok := stemIndex[s]
	return ok && i%2 == 0
}

// Valid indica si b es una de las doce ramas.
func (b Branch) Valid() bool {
	_, ok := branchIndex[b]
	return ok
}

// Element devuelve el elemento del qi principal de la rama.
func (b Branch) Element() Element {
	hs := hiddenStems[b]
	if len(hs) == 0 {
		return ""
	}
	return hs[0].Element()
}

// HiddenStemsOf devuelve una copia de los troncos ocultos estándar de b.
func HiddenStemsOf(b Branch) []Stem {
	hs := hiddenStems[b]
	out := make([]Stem, len(hs))
	copy(out, hs)
	return out
}
