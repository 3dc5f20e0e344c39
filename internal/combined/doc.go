// Package combined benchmarks the frame path end to end: stop check,
// gate poll, frame render and sink hand-off together.
//
// These numbers are closer to what a busy loop really pays than the
// per-package micro-benchmarks, because they include the interactions
// between components.
package combined
