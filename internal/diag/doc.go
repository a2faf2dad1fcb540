// Package diag defines the core diagnostic model shared across the
// tokenizer, preprocessor, and driver layers.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the lexer and the macro preprocessor.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the CLI can render.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. "macro
// defined here") rather than repeating the diagnostic message.
//
// # Fix suggestions
//
// Fix is intentionally minimal: a title plus a list of concrete text edits
// (FixEdit). There is no lazy-resolution machinery; producers build the edits
// up front and attach them with Diagnostic.WithFix / WithFixSuggestion.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. A
// producer that needs notes or fixes constructs a ReportBuilder via
// NewReportBuilder (or the helper functions ReportError/ReportWarning/
// ReportInfo) and chains WithNote/WithFixSuggestion before calling Emit.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. diag.BagReporter aggregates diagnostics into a Bag, which
// supports sorting and deduplication. diag.DedupReporter wraps
// another Reporter to drop exact duplicates.
//
// # Consumers
//
//   - internal/diagfmt renders Diagnostics into pretty/json/sarif formats.
//   - internal/driver coordinates bag collection per file and transports
//     diagnostic data to CLI commands.
package diag
