// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the diagnostics logger: plain text without timestamps on
// dst. quiet drops everything below errors.
func NewLogger(dst io.Writer, quiet bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(dst)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	l.SetLevel(logrus.InfoLevel)
	if quiet {
		l.SetLevel(logrus.ErrorLevel)
	}
	return l
}
