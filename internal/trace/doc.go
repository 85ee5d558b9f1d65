// Package trace provides a tracing subsystem for the tcab front end.
//
// The trace package tracks pipeline stages and per-module processing to help
// diagnose slow imports and unexpected preprocessing results.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	tcab build --trace=- --trace-level=detail main.tcab
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a compilation fails
//   - --trace-mode=both: stream and ring together (FindRing reaches the ring)
//
// # Levels and scopes
//
//   - LevelError: ScopeDriver only (one span per compiled entry)
//   - LevelPhase: adds ScopePass events (one per stage)
//   - LevelDetail: adds ScopeModule events (one per resolved module)
//   - LevelDebug: adds ScopeCache points (module cache hits)
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Child(ctx, trace.ScopePass, "imports")
//	defer span.End("")
package trace
