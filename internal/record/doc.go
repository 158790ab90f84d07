// Package record classifies raw log lines and decodes structured log records.
//
// # Overview
//
// A structured log line is a single JSON object carrying a message, an epoch
// millisecond timestamp and a free-form context map:
//
//	{"time":1700000000000,"message":"hello","context":{"logLevel":30,"package":"api"}}
//
// Anything else on the stream (stack traces, plain prints) is an orphan line.
//
// # Classification
//
// IsStructured is a cheap shape test that runs on every line. It never parses;
// lines that look structured but turn out to be malformed are reported later by
// Parse as a *ParseError.
//
// # Decoding
//
// Parse decodes with fastjson so that object key order survives a round trip.
// Context values are exposed as *fastjson.Value, a tagged variant covering
// strings, numbers, booleans, null, objects and arrays. Parse only insists on
// an object context; Validate reports a non-numeric time or non-string message
// for callers that need them. A Record can be mutated
// in place with SetString and re-serialized with String or AppendJSON; keys that
// already exist keep their position, new keys are appended.
//
// # Severity
//
// The numeric context field logLevel maps onto a fixed table of six severities.
// Unknown codes display as INFO while the original numeric text is kept.
package record
