package domain

// Element es una de las cinco fases (wuxing).
type Element string

const (
	Wood  Element = "木"
	Fire  Element = "火"
	Earth Element = "土"
	Metal Element = "金"
	Water Element = "水"
)

// Elements es el ciclo en orden de generación: cada elemento genera al siguiente
// y restringe al que está dos posiciones adelante.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var elementIndex = map[Element]int{Wood: 0, Fire: 1, Earth: 2, Metal: 3, Water: 4}

// canonicalStems guarda el tronco representativo (yang) de cada elemento.
var canonicalStems = map[Element]Stem{
	Wood:  StemJia,
	Fire:  StemBing,
	Earth: StemWu,
	Metal: StemGeng,
	Water: StemRen,
}

// Valid indica si e pertenece al ciclo.
func (e Element) Valid() bool {
	_, ok := elementIndex[e]
	return ok
}

// Index devuelve la posición de e en Elements, o -1 si no es válido.
func (e Element) Index() int {
	i, ok := elementIndex[e]
	if !ok {
		return -1
	}
	return i
}

func (e Element) step(n int) Element {
	i, ok := elementIndex[e]
	if !ok {
		return ""
	}
	return Elements[((i+n)%5+5)%5]
}

// Generates devuelve el elemento que e genera (我生).
func (e Element) Generates() Element { return e.step(1) }

// GeneratedBy devuelve el elemento que genera a e (生我).
func (e Element) GeneratedBy() Element { return e.step(-1) }

// Restrains devuelve el elemento que e restringe (我克).
func (e Element) Restrains() Element { return e.step(2) }

// RestrainedBy devuelve el elemento que restringe a e (克我).
func (e Element) RestrainedBy() Element { return e.step(-2) }

// CanonicalStem devuelve el primer tronco listado para el elemento.
func (e Element) CanonicalStem() Stem {
	return canonicalStems[e]
}
