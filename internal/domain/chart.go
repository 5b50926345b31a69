package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedChart se devuelve cuando a una carta le falta un campo o trae valores
// fuera de las tablas. No se corrige localmente: se informa al llamador.
var ErrMalformedChart = errors.New("malformed chart")

// Position identifica un tronco o una rama dentro de los cuatro pilares.
type Position string

const (
	PosYearStem    Position = "年干"
	PosMonthStem   Position = "月干"
	PosDayStem     Position = "日干"
	PosTimeStem    Position = "时干"
	PosYearBranch  Position = "年支"
	PosMonthBranch Position = "月支"
	PosDayBranch   Position = "日支"
	PosTimeBranch  Position = "时支"
)

var (
	stemPositions   = [4]Position{PosYearStem, PosMonthStem, PosDayStem, PosTimeStem}
	branchPositions = [4]Position{PosYearBranch, PosMonthBranch, PosDayBranch, PosTimeBranch}
	pillarNames     = [4]string{"year", "month", "day", "time"}
)

// Pillar es un par tronco/rama con los troncos ocultos de la rama en orden
// principal, medio, residual.
type Pillar struct {
	Stem   Stem   `json:"stem" yaml:"stem"`
	Branch Branch `json:"branch" yaml:"branch"`
	Hidden []Stem `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Chart es la carta normalizada que entrega la capa de calendario.
type Chart struct {
	Year  Pillar `json:"year" yaml:"year"`
	Month Pillar `json:"month" yaml:"month"`
	Day   Pillar `json:"day" yaml:"day"`
	Time  Pillar `json:"time" yaml:"time"`
}

// Pillars devuelve los pilares en orden año, mes, día, hora.
func (c Chart) Pillars() [4]Pillar {
	return [4]Pillar{c.Year, c.Month, c.Day, c.Time}
}

// StemPosition y BranchPosition traducen el índice de pilar a su etiqueta.
func StemPosition(i int) Position   { return stemPositions[i] }
func BranchPosition(i int) Position { return branchPositions[i] }

// DayMaster es el tronco del día.
func (c Chart) DayMaster() Stem { return c.Day.Stem }

// DayElement es el elemento del maestro del día.
func (c Chart) DayElement() Element { return c.Day.Stem.Element() }

// Validate verifica que los cuatro pilares estén completos y dentro de las tablas.
func (c Chart) Validate() error {
	for i, p := range c.Pillars() {
		name := pillarNames[i]
		if p.Stem == "" || p.Branch == "" {
			return fmt.Errorf("%w: %s pillar incomplete", ErrMalformedChart, name)
		}
		if !p.Stem.Valid() {
			return fmt.Errorf("%w: %s stem %q unknown", ErrMalformedChart, name, p.Stem)
		}
		if !p.Branch.Valid() {
			return fmt.Errorf("%w: %s branch %q unknown", ErrMalformedChart, name, p.Branch)
		}
		if len(p.Hidden) == 0 || len(p.Hidden) > 3 {
			return fmt.Errorf("%w: %s branch has %d hidden stems", ErrMalformedChart, name, len(p.Hidden))
		}
		for _, h := range p.Hidden {
			if !h.Valid() {
				return fmt.Errorf("%w: %s hidden stem %q unknown", ErrMalformedChart, name, h)
			}
		}
	}
	return nil
}

// String devuelve la carta como "丁卯 壬寅 乙亥 辛巳".
func (c Chart) String() string {
	parts := make([]string, 0, 4)
	for _, p := range c.Pillars() {
		parts = append(parts, string(p.Stem)+string(p.Branch))
	}
	return strings.Join(parts, " ")
}

// NewPillar arma un pilar completando los troncos ocultos con la tabla estándar.
func NewPillar(s Stem, b Branch) Pillar {
	return Pillar{Stem: s, Branch: b, Hidden: HiddenStemsOf(b)}
}

// ParseChart interpreta cuatro pilares tronco+rama separados por espacios.
// Los troncos ocultos se toman de la tabla estándar.
func ParseChart(text string) (Chart, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 {
		return Chart{}, fmt.Errorf("%w: expected 4 pillars, got %d", ErrMalformedChart, len(fields))
	}
	var pillars [4]Pillar
	for i, f := range fields {
		r := []rune(f)
		if len(r) != 2 {
			return Chart{}, fmt.Errorf("%w: pillar %q must be stem+branch", ErrMalformedChart, f)
		}
		pillars[i] = NewPillar(Stem(string(r[0])), Branch(string(r[1])))
	}
	c := Chart{Year: pillars[0], Month: pillars[1], Day: pillars[2], Time: pillars[3]}
	if err := c.Validate(); err != nil {
		return Chart{}, err
	}
	return c, nil
}

// FillHidden completa los troncos ocultos vacíos con la tabla estándar.
func (c Chart) FillHidden() Chart {
	fill := func(p Pillar) Pillar {
		if len(p.Hidden) == 0 {
			p.Hidden = HiddenStemsOf(p.Branch)
		}
		return p
	}
	c.Year, c.Month, c.Day, c.Time = fill(c.Year), fill(c.Month), fill(c.Day), fill(c.Time)
	return c
}
