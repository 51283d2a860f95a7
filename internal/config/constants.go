// Package config holds process-wide flags and tunables shared across the
// type model, relation engine, and environment resolver. Nothing here is
// per-session state; see internal/session for that.
package config

// Version is the current tycore version.
var Version = "0.1.0"

// IsTestMode is a package-level test-mode flag that a test binary can
// set once at process startup, mirroring how the original
// scripting-language checker this package was adapted from flips a
// single package-level flag rather than threading a formatting option
// through every String() call. No String() method in this module reads
// it: output is the same whether it is set or not.
var IsTestMode = false

// MaxCycleIterations bounds the fixed-point iteration a cycle.Detector
// will run before committing the provisional value (see internal/cycle).
// Recursive types converge well within single digits in practice, so
// this is generous.
var MaxCycleIterations = 8

// MaxUnionDisplay is a display bound on union members, purely a display
// concern. UnionT.String() does not read it and renders every member;
// nothing is elided.
const MaxUnionDisplay = 12
