// Package ppmacro is a minimal macro preprocessor used to drive and test
// internal/pptoken's Builder end to end: it recognizes `macro NAME = ...;`
// and `macro NAME(params) = ...;` definitions, expands invocations with full
// rescanning and a recursion guard, and reports both the expanded token
// stream and macro-expansion events through the pptoken.Preprocessor
// contract.
//
// It deliberately does not implement #include, #pragma, or skipped
// conditional regions — those are out of scope for the token buffer this
// package exists to exercise.
package ppmacro
