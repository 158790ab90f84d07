// Package logger configures diagnostic logging. Diagnostics go to stderr so
// they never mix with the transformed stream on stdout.
package logger

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger to write text records to w at
// the given level. Unknown levels fall back to warn.
func Setup(level string, w io.Writer) *log.Logger {
	logger := log.StandardLogger()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		logger.SetLevel(log.WarnLevel)
		logger.Warnf("unknown log level %q, using warn", level)
		return logger
	}
	logger.SetLevel(parsed)
	return logger
}
