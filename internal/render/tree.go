package render

import (
	"strings"
	"unicode/utf8"

	"github.com/valyala/fastjson"

	"github.com/five82/logpipe/internal/record"
)

const indentWidth = 2

// writeObject writes fields as an indented key/value tree without a trailing
// newline. Inline values of sibling keys start in the same column.
func (f *Formatter) writeObject(b *strings.Builder, fields []record.Field, indent int) {
	width := 0
	for _, field := range fields {
		width = max(width, utf8.RuneCountInString(field.Key))
	}
	for i, field := range fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		pad(b, indent)
		b.WriteString(f.palette.paint(f.palette.key, field.Key+":"))
		f.writeNested(b, field.Value, indent, width-utf8.RuneCountInString(field.Key))
	}
}

func (f *Formatter) writeArray(b *strings.Builder, items []*fastjson.Value, indent int) {
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		pad(b, indent)
		b.WriteString(f.palette.paint(f.palette.dash, "-"))
		f.writeNested(b, item, indent, 0)
	}
}

// writeNested writes v after a "key:" or "-" prefix that is already on the
// current line. align pads inline values to the widest sibling key.
func (f *Formatter) writeNested(b *strings.Builder, v *fastjson.Value, indent, align int) {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		if o.Len() == 0 {
			inline(b, align)
			b.WriteString("{}")
			return
		}
		b.WriteByte('\n')
		f.writeObject(b, objectFields(o), indent+indentWidth)
	case fastjson.TypeArray:
		items, _ := v.Array()
		if len(items) == 0 {
			inline(b, align)
			b.WriteString("(empty array)")
			return
		}
		b.WriteByte('\n')
		f.writeArray(b, items, indent+indentWidth)
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		if !strings.Contains(string(s), "\n") {
			inline(b, align)
			b.Write(s)
			return
		}
		f.writeMultiline(b, string(s), indent+indentWidth)
	default:
		inline(b, align)
		b.WriteString(f.scalar(v))
	}
}

func (f *Formatter) writeMultiline(b *strings.Builder, s string, indent int) {
	b.WriteByte('\n')
	pad(b, indent)
	b.WriteString(`"""`)
	for _, line := range strings.Split(s, "\n") {
		b.WriteByte('\n')
		pad(b, indent+indentWidth)
		b.WriteString(line)
	}
	b.WriteByte('\n')
	pad(b, indent)
	b.WriteString(`"""`)
}

func (f *Formatter) scalar(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeNumber:
		return f.palette.paint(f.palette.number, v.String())
	case fastjson.TypeTrue:
		return f.palette.paint(f.palette.truthy, "true")
	case fastjson.TypeFalse:
		return f.palette.paint(f.palette.falsy, "false")
	default:
		return f.palette.paint(f.palette.null, "null")
	}
}

func objectFields(o *fastjson.Object) []record.Field {
	fields := make([]record.Field, 0, o.Len())
	o.Visit(func(key []byte, v *fastjson.Value) {
		fields = append(fields, record.Field{Key: string(key), Value: v})
	})
	return fields
}

func inline(b *strings.Builder, align int) {
	b.WriteByte(' ')
	pad(b, align)
}

func pad(b *strings.Builder, n int) {
	b.WriteString(strings.Repeat(" ", n))
}
