// Package filter suppresses structured records that do not match an
// expression, optionally keeping a window of records around each match.
package filter

import (
	"strings"

	"github.com/five82/logpipe/internal/record"
)

// Transformer renders one input line.
type Transformer interface {
	Transform(line string) (string, error)
}

// Config configures a Filter.
type Config struct {
	Expression string
	Head       int // records kept before a match
	Lag        int // records kept after a match
}

// Filter decorates a Transformer with record filtering. Orphan and
// undecodable lines are not records and always reach the wrapped Transformer.
type Filter struct {
	expr      *Expression
	next      Transformer
	held      *ring
	lag       int
	remaining int
}

// New compiles cfg.Expression and wraps next.
func New(cfg Config, next Transformer) (*Filter, error) {
	expr, err := Compile(cfg.Expression)
	if err != nil {
		return nil, err
	}
	return &Filter{
		expr: expr,
		next: next,
		held: newRing(cfg.Head),
		lag:  max(cfg.Lag, 0),
	}, nil
}

// Transform renders line when it is a match or falls inside a head/lag window.
func (f *Filter) Transform(line string) (string, error) {
	if !record.IsStructured(line) {
		return f.next.Transform(line)
	}
	rec, err := record.Parse(line)
	if err != nil {
		return f.next.Transform(line)
	}

	if f.expr.Match(rec) {
		f.remaining = f.lag
		held := f.held.drain()
		if len(held) == 0 {
			return f.next.Transform(line)
		}
		var b strings.Builder
		for _, h := range append(held, line) {
			out, err := f.next.Transform(h)
			if err != nil {
				return b.String(), err
			}
			b.WriteString(out)
		}
		return b.String(), nil
	}

	if f.remaining > 0 {
		f.remaining--
		return f.next.Transform(line)
	}
	f.held.push(line)
	return "", nil
}
