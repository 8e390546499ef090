package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger returns a logger writing to the configured log file. The terminal
// belongs to the editor, so without a log file nothing is logged. The returned
// closer closes the log file.
func newLogger(cfg Config) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log.level: %w", err)
	}
	log.SetLevel(level)

	if cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return log, nopCloser{}, nil
	}

	file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log %s: %w", cfg.Log.File, err)
	}
	log.SetOutput(file)
	return log, file, nil
}

// nopCloser is the closer of a logger without a log file.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }
