// Package diag defines the diagnostics the driver raises while building
// toolchain jobs.
//
// Producers call Reporter.Report (or the ReportWarning/ReportError
// helpers) and never format anything themselves. BagReporter collects
// into a capacity-bounded Bag which the CLI sorts and renders.
//
// Diagnostics are keyed by the offending command-line argument rather than
// by a source span: every finding at this layer is about how the compiler
// was invoked.
package diag
