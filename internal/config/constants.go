// Package config holds the small set of package-level toggles consulted
// by the parser, analyzer, and pipeline: plain exported vars
// rather than a dependency-injected options struct.
package config

// MaxRecursionDepth bounds parser and analyzer recursion. A
// translation unit nesting deeper than this produces
// diagnostics.ErrRecursionLimitExceeded instead of overflowing the stack.
var MaxRecursionDepth = 256

// StrictAbortOnFatal, when true, makes the pipeline stop driving further
// passes as soon as the sink records a Fatal diagnostic rather than
// continuing best-effort.
var StrictAbortOnFatal = true

// TestMode is a test-run toggle for drivers. No package in this module
// reads it; diagnostic rendering (Diagnostic.Message) never includes the
// sink's CompilationID either way.
var TestMode = false
