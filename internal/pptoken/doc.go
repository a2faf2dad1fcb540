// Package pptoken builds and queries the preprocessor-aware token buffer: the
// structure that reconciles a file's raw ("spelled") tokens with the macro
// expanded stream the rest of the front end consumes, together with the
// mapping between the two.
//
// The package is organized the way it is built:
//
//   - Token / FileRange — immutable value types over a ppsrc.Loc.
//   - Tokenize — raw per-file lexing, grounded on internal/lexer.
//   - TokenCollector — watches a Preprocessor's expanded stream and captures
//     its macro-expansion callbacks.
//   - Build — fuses the collected data into a TokenBuffer.
//   - TokenBuffer's query methods answer expanded<->spelled lookups.
package pptoken
