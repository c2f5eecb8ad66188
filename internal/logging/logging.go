package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger on stdout. Unknown levels fall back to info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
