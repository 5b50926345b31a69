package service

import "go.uber.org/zap"

// Módulos que escriben en el trazador.
const (
	TraceEnergy      = "五行评分"
	TraceInteraction = "刑冲合会"
	TraceGeju        = "格局分析"
	TraceStrength    = "强弱判定"
)

// TraceEntry es un registro (módulo, mensaje).
type TraceEntry struct {
	Module string `json:"module"`
	Desc   string `json:"desc"`
}

// Tracer acumula registros de una sola invocación del pipeline. No es seguro
// compartirlo entre goroutines: cada análisis crea el suyo.
type Tracer struct {
	entries []TraceEntry
	logger  *zap.Logger
}

// NewTracer crea un trazador; si logger no es nil cada registro se replica en debug.
func NewTracer(logger *zap.Logger) *Tracer {
	return &Tracer{logger: logger}
}

// Record agrega un registro. Un Tracer nil descarta todo.
func (t *Tracer) Record(module, desc string) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, TraceEntry{Module: module, Desc: desc})
	if t.logger != nil {
		t.logger.Debug("trace", zap.String("module", module), zap.String("desc", desc))
	}
}

// Entries devuelve una copia de los registros.
func (t *Tracer) Entries() []TraceEntry {
	if t == nil {
		return nil
	}
	out := make([]TraceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ByModule filtra los mensajes de un módulo.
func (t *Tracer) ByModule(module string) []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, e := range t.entries {
		if e.Module == module {
			out = append(out, e.Desc)
		}
	}
	return out
}
