package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fastjson"
)

// Reserved context keys with a dedicated place in rendered output.
const (
	KeyApplication = "application"
	KeyHostname    = "hostname"
	KeyInstanceID  = "instanceId"
	KeyLogLevel    = "logLevel"
	KeyNamespace   = "namespace"
	KeyPackage     = "package"
)

// Field is a single context entry in document order.
type Field struct {
	Key   string
	Value *fastjson.Value
}

// Record is a decoded structured log line.
type Record struct {
	root    *fastjson.Value
	context *fastjson.Object
	arena   fastjson.Arena
}

// Parse decodes line into a Record. It only requires a JSON object with an
// object context; field types are checked separately by Validate so that
// records can be augmented without being rendered. Any failure is returned as
// a *ParseError.
func Parse(line string) (*Record, error) {
	root, err := fastjson.Parse(line)
	if err != nil {
		return nil, &ParseError{Line: line, Err: err}
	}
	if root.Type() != fastjson.TypeObject {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("expected a JSON object, got %s", root.Type())}
	}
	ctx := root.Get("context")
	if ctx == nil {
		return nil, &ParseError{Line: line, Err: errors.New("missing context")}
	}
	obj, err := ctx.Object()
	if err != nil {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("context must be an object, got %s", ctx.Type())}
	}
	return &Record{root: root, context: obj}, nil
}

// Validate checks the envelope field types a renderer relies on: time, when
// present, must be a number and message, when present, a string.
func (r *Record) Validate() error {
	if ts := r.root.Get("time"); ts != nil && ts.Type() != fastjson.TypeNumber {
		return fmt.Errorf("time must be a number, got %s", ts.Type())
	}
	if msg := r.root.Get("message"); msg != nil && msg.Type() != fastjson.TypeString {
		return fmt.Errorf("message must be a string, got %s", msg.Type())
	}
	return nil
}

// maxEpochMillis bounds timestamps to the ECMAScript date range (±100,000,000 days).
const maxEpochMillis = 8.64e15

// Time returns the record timestamp. ok is false when the record has none or
// it is outside the representable range.
func (r *Record) Time() (t time.Time, ok bool) {
	v := r.root.Get("time")
	if v == nil {
		return time.Time{}, false
	}
	ms, err := v.Float64()
	if err != nil || ms > maxEpochMillis || ms < -maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// Message returns the record message, or "" when absent.
func (r *Record) Message() string {
	v := r.root.Get("message")
	if v == nil {
		return ""
	}
	b, err := v.StringBytes()
	if err != nil {
		return ""
	}
	return string(b)
}

// Context returns the context entries in document order.
func (r *Record) Context() []Field {
	fields := make([]Field, 0, r.context.Len())
	r.context.Visit(func(key []byte, v *fastjson.Value) {
		fields = append(fields, Field{Key: string(key), Value: v})
	})
	return fields
}

// Get returns the context value stored under key, or nil.
func (r *Record) Get(key string) *fastjson.Value {
	return r.context.Get(key)
}

// GetString returns a context string value. Non-string values report false.
func (r *Record) GetString(key string) (string, bool) {
	v := r.context.Get(key)
	if v == nil || v.Type() != fastjson.TypeString {
		return "", false
	}
	b, _ := v.StringBytes()
	return string(b), true
}

// LogLevel returns the numeric logLevel of the record. Missing, zero and
// non-numeric levels report false.
func (r *Record) LogLevel() (LogLevel, bool) {
	v := r.context.Get(KeyLogLevel)
	if v == nil || v.Type() != fastjson.TypeNumber {
		return LogLevel{}, false
	}
	code, err := v.Float64()
	if err != nil || code == 0 {
		return LogLevel{}, false
	}
	return LogLevel{Code: formatCode(code), Severity: SeverityOf(code)}, true
}

// SetString stores a string value in the context map.
func (r *Record) SetString(key, value string) {
	r.context.Set(key, r.arena.NewString(value))
}

// AppendJSON appends the compact JSON encoding of the record to dst.
func (r *Record) AppendJSON(dst []byte) []byte {
	return appendValue(dst, r.root)
}

// String returns the compact JSON encoding of the record.
func (r *Record) String() string {
	return string(r.AppendJSON(nil))
}
