package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/five82/logpipe/internal/record"
)

const (
	fieldMessage  = "message"
	contextPrefix = "context."
)

type term struct {
	path   []string // nil targets the message
	re     *regexp.Regexp
	negate bool
}

// Expression is a compiled filter. All terms must match.
type Expression struct {
	source string
	terms  []term
}

// Compile parses a filter expression. Terms are separated by whitespace and
// take the form [-][field:]pattern, where field is "message" or a
// "context."-prefixed path and pattern is a case-insensitive regular
// expression. An empty expression matches every record.
func Compile(expr string) (*Expression, error) {
	e := &Expression{source: strings.TrimSpace(expr)}
	for _, raw := range strings.Fields(expr) {
		t, err := compileTerm(raw)
		if err != nil {
			return nil, fmt.Errorf("filter term %q: %w", raw, err)
		}
		e.terms = append(e.terms, t)
	}
	return e, nil
}

func compileTerm(raw string) (term, error) {
	var t term
	if strings.HasPrefix(raw, "-") && len(raw) > 1 {
		t.negate = true
		raw = raw[1:]
	}

	pattern := raw
	switch {
	case strings.HasPrefix(raw, fieldMessage+":"):
		pattern = strings.TrimPrefix(raw, fieldMessage+":")
	case strings.HasPrefix(raw, contextPrefix):
		field, rest, ok := strings.Cut(raw, ":")
		if !ok {
			return term{}, fmt.Errorf("missing pattern after %q", field)
		}
		path := strings.Split(strings.TrimPrefix(field, contextPrefix), ".")
		for _, part := range path {
			if part == "" {
				return term{}, fmt.Errorf("empty path segment in %q", field)
			}
		}
		t.path = path
		pattern = rest
	}
	if pattern == "" {
		return term{}, fmt.Errorf("empty pattern")
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return term{}, err
	}
	t.re = re
	return t, nil
}

// String returns the normalized source expression.
func (e *Expression) String() string {
	return e.source
}

// Match reports whether rec satisfies every term.
func (e *Expression) Match(rec *record.Record) bool {
	for _, t := range e.terms {
		if t.match(rec) == t.negate {
			return false
		}
	}
	return true
}

func (t term) match(rec *record.Record) bool {
	if t.path == nil {
		return t.re.MatchString(rec.Message())
	}
	v := rec.Get(t.path[0])
	if v != nil && len(t.path) > 1 {
		v = v.Get(t.path[1:]...)
	}
	if v == nil {
		return false
	}
	return t.re.MatchString(valueText(v))
}

func valueText(v *fastjson.Value) string {
	if v.Type() == fastjson.TypeString {
		b, _ := v.StringBytes()
		return string(b)
	}
	return v.String()
}
