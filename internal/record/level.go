package record

import "strconv"

// Severity is the display variant of a numeric log level.
type Severity int

const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

var severityNames = [...]string{
	SeverityTrace: "TRACE",
	SeverityDebug: "DEBUG",
	SeverityInfo:  "INFO",
	SeverityWarn:  "WARN",
	SeverityError: "ERROR",
	SeverityFatal: "FATAL",
}

var levelTable = map[float64]Severity{
	10: SeverityTrace,
	20: SeverityDebug,
	30: SeverityInfo,
	40: SeverityWarn,
	50: SeverityError,
	60: SeverityFatal,
}

// String returns the upper-case severity name.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return severityNames[SeverityInfo]
	}
	return severityNames[s]
}

// SeverityOf resolves a numeric code. Unknown codes resolve to SeverityInfo.
func SeverityOf(code float64) Severity {
	if s, ok := levelTable[code]; ok {
		return s
	}
	return SeverityInfo
}

// LogLevel pairs the numeric code as written in the record with its severity.
type LogLevel struct {
	Code     string
	Severity Severity
}

// String renders the level as "NAME (code)".
func (l LogLevel) String() string {
	return l.Severity.String() + " (" + l.Code + ")"
}

func formatCode(code float64) string {
	return strconv.FormatFloat(code, 'f', -1, 64)
}
