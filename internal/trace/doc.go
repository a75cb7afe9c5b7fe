// Package trace records what a conversion run is doing.
//
// Events are emitted through a Tracer carried in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "convert", parentID)
//	defer span.End("")
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only error points
//   - LevelPhase: run and phase boundaries (open, convert, commit)
//   - LevelDetail: per-file events in batch mode
//   - LevelDebug: per-record events (skipped lines, bad tokens)
//
// Output is either human-readable text or NDJSON, written to stderr or a file.
package trace
