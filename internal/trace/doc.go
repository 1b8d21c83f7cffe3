// Package trace records what the driver did while resolving a toolchain
// and building jobs.
//
// # Usage
//
//	ccdriver jobs --trace=- --trace-level=detail -- -static a.o b.o
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: crash dumps only
//   - LevelPhase: driver and toolchain construction boundaries
//   - LevelDetail: individual jobs
//   - LevelDebug: per-argument and per-path decisions
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeToolchain, "construct", 0)
//	defer span.End("")
package trace
