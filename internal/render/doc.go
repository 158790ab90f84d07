// Package render turns structured log lines into human-readable blocks.
//
// A record renders as a header line followed by its residual context:
//
//	[2023-11-14T22:13:20.000Z] INFO (30) (@api) (#http): request served
//	path: /healthz
//	timing:
//	  total: 12
//
// The reserved context keys (application, hostname, instanceId, logLevel,
// namespace, package) never appear in the residual tree. Lines that do not
// classify as records pass through unchanged, and records that fail to decode
// render as an invalid-input block so the stream keeps flowing.
//
// Colors come from a Palette built on lipgloss. A disabled palette returns its
// input unchanged, which keeps the uncolored output byte-exact.
package render
