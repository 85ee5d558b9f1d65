package trace

import "errors"

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is installed when tracing is off; spans begun on it are inert.
var Nop Tracer = nopTracer{}

// tee backs --trace-mode=both: events are written as they happen and the
// last ones are also kept for the dump after a failed command.
type tee struct {
	stream *StreamTracer
	ring   *RingTracer
}

func (t *tee) Emit(ev *Event) {
	t.stream.Emit(ev)
	t.ring.Emit(ev)
}

func (t *tee) Flush() error {
	return errors.Join(t.stream.Flush(), t.ring.Flush())
}

func (t *tee) Close() error {
	return errors.Join(t.stream.Close(), t.ring.Close())
}

func (t *tee) Level() Level  { return t.stream.Level() }
func (t *tee) Enabled() bool { return t.stream.Enabled() }

// FindRing returns the ring buffer behind t, if it keeps one.
func FindRing(t Tracer) (*RingTracer, bool) {
	switch tr := t.(type) {
	case *RingTracer:
		return tr, true
	case *tee:
		return tr.ring, true
	}
	return nil, false
}
