// Package mclog builds the server's shared logger: logrus fanned out to
// stdout and a lumberjack-rotated file, replacing the teacher's bare
// log.Printf calls and original_source's logger module with the richer
// stack the rest of the example pack reaches for.
package mclog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the rotated file sink.
type Options struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a *logrus.Logger writing to stdout and a rotating file at
// the same time.
func New(opts Options) *logrus.Logger {
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = 5
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = 28
	}

	fileSink := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	log := logrus.New()
	log.SetOutput(io.MultiWriter(os.Stdout, fileSink))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}
