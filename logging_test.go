package main

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerToFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.File = filepath.Join(t.TempDir(), "broadnic.log")
	cfg.Log.Level = "warn"

	log, closer, err := newLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("quiet")
	log.WithField("path", "a.txt").Warn("loud")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	got := readFile(t, cfg.Log.File)
	if strings.Contains(got, "quiet") {
		t.Errorf("Expected info messages to be filtered out, got %#v", got)
	}
	for _, want := range []string{"level=warning", "msg=loud", "path=a.txt"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %#v in the log, got %#v", want, got)
		}
	}
}

func TestNewLoggerDiscards(t *testing.T) {
	log, closer, err := newLogger(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := closer.(nopCloser); !ok {
		t.Errorf("Expected a no-op closer without a log file, got %T", closer)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Expected closing nothing to succeed, got %v", err)
	}

	if log.Out != io.Discard {
		t.Errorf("Expected output to be discarded without a log file")
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected level info, got %v", log.GetLevel())
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "loudest"
	if _, _, err := newLogger(cfg); err == nil || !strings.HasPrefix(err.Error(), "config: log.level") {
		t.Errorf("Expected a log.level config error, got %v", err)
	}
}
