package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewAppliesLevel(t *testing.T) {
	logger, err := New("warn", "json")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected warn to be enabled")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "console"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
