package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/statuspress/statuspress/internal/config"
)

func TestNewDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	log, closer, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log == nil {
		t.Fatal("nil logger")
	}
	if closer != nil {
		t.Error("closer should be nil without a log file")
	}
	if log.IsDebug() {
		t.Error("debug enabled without verbose")
	}
}

func TestNewVerbose(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Verbose = true
	log, _, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !log.IsDebug() {
		t.Error("verbose config did not enable debug")
	}
}

func TestNewWithLogFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "run.log")

	log, closer, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if closer == nil {
		t.Fatal("closer missing for log file")
	}

	log.Info("hello from the test")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
