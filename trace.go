package easysplit

// Tracer receives diagnostic events from the graph and the reducer as
// (event, key, value, key, value, ...) pairs. Implementations are supplied
// by the caller; nothing in this package writes anywhere by default.
type Tracer interface {
	Trace(event string, kv ...any)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(event string, kv ...any)

func (f TracerFunc) Trace(event string, kv ...any) { f(event, kv...) }

// NopTracer discards every event.
type NopTracer struct{}

func (NopTracer) Trace(string, ...any) {}
