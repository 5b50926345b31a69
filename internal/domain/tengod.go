package domain

// TenGod es la relación (十神) de un tronco con el tronco del día.
type TenGod string

const (
	TenGodPeer           TenGod = "比肩"
	TenGodRobWealth      TenGod = "劫财"
	TenGodEatingGod      TenGod = "食神"
	TenGodHurtingOfficer TenGod = "伤官"
	TenGodIndirectWealth TenGod = "偏财"
	TenGodDirectWealth   TenGod = "正财"
	TenGodSevenKillings  TenGod = "七杀"
	TenGodOfficial       TenGod = "正官"
	TenGodIndirectSeal   TenGod = "偏印"
	TenGodDirectSeal     TenGod = "正印"
)

// TenGodOf calcula el rol de other respecto de day. Misma polaridad produce el rol
// "偏" (比肩, 食神, 偏财, 七杀, 偏印). Devuelve "" si alguno de los troncos es desconocido.
func TenGodOf(day, other Stem) TenGod {
	de, oe := day.Element(), other.Element()
	if de == "" || oe == "" {
		return ""
	}
	same := day.Yang() == other.Yang()
	pick := func(samePolarity, diffPolarity TenGod) TenGod {
		if same {
			return samePolarity
		}
		return diffPolarity
	}
	switch oe {
	case de:
		return pick(TenGodPeer, TenGodRobWealth)
	case de.Generates():
		return pick(TenGodEatingGod, TenGodHurtingOfficer)
	case de.Restrains():
		return pick(TenGodIndirectWealth, TenGodDirectWealth)
	case de.RestrainedBy():
		return pick(TenGodSevenKillings, TenGodOfficial)
	default:
		return pick(TenGodIndirectSeal, TenGodDirectSeal)
	}
}

func (t TenGod) IsOfficial() bool       { return t == TenGodOfficial }
func (t TenGod) IsKillings() bool       { return t == TenGodSevenKillings }
func (t TenGod) IsEatingGod() bool      { return t == TenGodEatingGod }
func (t TenGod) IsHurtingOfficer() bool { return t == TenGodHurtingOfficer }

// IsWealth agrupa 正财 y 偏财.
func (t TenGod) IsWealth() bool {
	return t == TenGodDirectWealth || t == TenGodIndirectWealth
}

// IsSeal agrupa 正印 y 偏印.
func (t TenGod) IsSeal() bool {
	return t == TenGodDirectSeal || t == TenGodIndirectSeal
}

// IsPeer agrupa 比肩 y 劫财: mismo elemento que el maestro del día.
func (t TenGod) IsPeer() bool {
	return t == TenGodPeer || t == TenGodRobWealth
}

// FormsPattern indica si el rol puede nombrar uno de los ocho patrones estándar.
func (t TenGod) FormsPattern() bool {
	return t.IsOfficial() || t.IsKillings() || t.IsWealth() || t.IsSeal() ||
		t.IsEatingGod() || t.IsHurtingOfficer()
}
