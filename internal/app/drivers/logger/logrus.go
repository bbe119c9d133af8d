package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the plain text logger used by command line tools.
func NewLogrusLogger(output io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
