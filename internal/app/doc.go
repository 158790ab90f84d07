// Package app wires configuration, logging and the stream pipeline together.
//
// # Overview
//
// Run is the composition root for both commands:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        file + LOGPIPE_* environment
//	       ├─────> Options.Overrides    flags set on the command line
//	       ├─────> logger.Setup()       logrus on stderr
//	       ├─────> build()              Augmenter or Formatter (+ Filter)
//	       └─────> stream.Driver.Run()  stdin → transform → stdout
//
// # Error Handling
//
// Fatal errors are returned from Run and end the process with a non-zero
// status:
//   - configuration, flag value or filter expression errors
//   - a malformed structured record in augment mode
//   - write failures on stdout
//
// In pretty-print mode malformed records are rendered as diagnostic blocks and
// never stop the stream.
//
// # Process-wide State
//
// The hostname and instance ID live in an enrich.Identity created here (or
// supplied through Options for tests) and passed to the Augmenter. Nothing is
// kept in package-level variables.
package app
