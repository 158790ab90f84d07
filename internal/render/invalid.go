package render

import "strings"

// invalid renders the diagnostic block for a structured-looking line that could
// not be rendered. The block carries both the failure and the raw input.
func (f *Formatter) invalid(line string, err error) string {
	var b strings.Builder
	b.WriteString(f.palette.paint(f.palette.alert, "Invalid input: cannot parse log record."))
	b.WriteString("\n")
	b.WriteString(f.palette.paint(f.palette.heading, " error "))
	b.WriteString("\n")
	b.WriteString(err.Error())
	b.WriteString("\n")
	b.WriteString(f.palette.paint(f.palette.heading, " input "))
	b.WriteString("\n")
	b.WriteString(line)
	b.WriteString("\n\n")
	return b.String()
}
