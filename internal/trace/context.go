package trace

import "context"

type ctxKey struct{}

// ctxState is what a context carries: the tracer and the innermost open span.
type ctxState struct {
	tracer Tracer
	span   SpanContext
}

// SpanContext identifies the innermost span opened with Child.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx. Spans recorded in ctx earlier are dropped:
// a new tracer starts a new tree.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// CurrentSpan returns the innermost span of ctx; zero when none is open.
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

func withSpan(ctx context.Context, sc SpanContext) context.Context {
	st := stateOf(ctx)
	st.span = sc
	return context.WithValue(ctx, ctxKey{}, st)
}
