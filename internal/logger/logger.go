package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the process-wide logrus logger. format is "json" or
// "text"; an empty format picks json for production and text otherwise.
func Setup(level, format string, production bool) *logrus.Logger {
	log := logrus.StandardLogger()
	configure(log, os.Stdout, level, format, production)
	return log
}

// New returns an independent logger writing to w, configured like Setup.
func New(w io.Writer, level, format string, production bool) *logrus.Logger {
	log := logrus.New()
	configure(log, w, level, format, production)
	return log
}

func configure(log *logrus.Logger, w io.Writer, level, format string, production bool) {
	log.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "" {
		format = "text"
		if production {
			format = "json"
		}
	}

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
