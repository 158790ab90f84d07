package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"github.com/five82/logpipe/internal/record"
)

// Format selects how structured records are written.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates an output format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPretty, FormatJSON:
		return f, nil
	case "":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// formatTime renders ts in UTC as ISO 8601 with milliseconds. Years outside
// 0000-9999 use the expanded six digit form with an explicit sign.
func formatTime(ts time.Time) string {
	ts = ts.UTC()
	year := ts.Year()
	if year >= 0 && year <= 9999 {
		return ts.Format(timeLayout)
	}
	sign := "+"
	if year < 0 {
		sign = "-"
		year = -year
	}
	return fmt.Sprintf("%s%06d%s", sign, year, ts.Format(timeLayout[len("2006"):]))
}

var reservedKeys = map[string]struct{}{
	record.KeyApplication: {},
	record.KeyHostname:    {},
	record.KeyInstanceID:  {},
	record.KeyLogLevel:    {},
	record.KeyNamespace:   {},
	record.KeyPackage:     {},
}

// Config configures a Formatter.
type Config struct {
	Format  Format
	Palette Palette
}

// Formatter renders structured log lines for humans.
type Formatter struct {
	format  Format
	palette Palette
}

// NewFormatter returns a Formatter. An empty format renders pretty output.
func NewFormatter(cfg Config) *Formatter {
	format := cfg.Format
	if format == "" {
		format = FormatPretty
	}
	return &Formatter{format: format, palette: cfg.Palette}
}

// Transform renders a single input line. It never fails: orphan lines pass
// through and malformed records become an invalid-input block.
func (f *Formatter) Transform(line string) (string, error) {
	if !record.IsStructured(line) {
		return line + "\n", nil
	}
	rec, err := record.Parse(line)
	if err != nil {
		if f.format == FormatJSON {
			return line + "\n", nil
		}
		return f.invalid(line, err), nil
	}
	return f.Render(line, rec), nil
}

// Render renders an already decoded record. line is the original input and is
// only used for the invalid-input block.
func (f *Formatter) Render(line string, rec *record.Record) string {
	if f.format == FormatJSON {
		return rec.String() + "\n"
	}
	out, err := f.pretty(rec)
	if err != nil {
		return f.invalid(line, err)
	}
	return out
}

func (f *Formatter) pretty(rec *record.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	ts, ok := rec.Time()
	if !ok {
		return "", errors.New("record has no valid time")
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(formatTime(ts))
	b.WriteString("]")

	if lvl, ok := rec.LogLevel(); ok {
		b.WriteString(" ")
		b.WriteString(f.palette.Level(lvl.Severity, lvl.String()))
	}
	if pkg, ok := truthyText(rec.Get(record.KeyPackage)); ok {
		b.WriteString(" (@" + pkg + ")")
	}
	if ns, ok := truthyText(rec.Get(record.KeyNamespace)); ok {
		b.WriteString(" (#" + ns + ")")
	}
	b.WriteString(": ")
	b.WriteString(rec.Message())
	b.WriteString("\n")

	rest := residual(rec.Context())
	if len(rest) > 0 {
		f.writeObject(&b, rest, 0)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func residual(fields []record.Field) []record.Field {
	out := fields[:0:0]
	for _, field := range fields {
		if _, reserved := reservedKeys[field.Key]; reserved {
			continue
		}
		out = append(out, field)
	}
	return out
}

// truthyText returns the display text of v, or false for absent, null, false,
// zero and empty values.
func truthyText(v *fastjson.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	switch v.Type() {
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		return string(s), len(s) > 0
	case fastjson.TypeNumber:
		n, _ := v.Float64()
		return v.String(), n != 0
	case fastjson.TypeTrue:
		return "true", true
	case fastjson.TypeObject, fastjson.TypeArray:
		return v.String(), true
	default:
		return "", false
	}
}
