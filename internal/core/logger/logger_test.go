package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestBuild_WritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := Build(Options{
		Level: "info",
		JSON:  true,
		Rotate: FileRotate{
			Enable:   true,
			Filename: file,
		},
	})
	l.Info("booking created")
	l.Debug("dropped by level")
	cleanup()

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "booking created") {
		t.Fatalf("log file missing entry: %s", b)
	}
	if strings.Contains(string(b), "dropped by level") {
		t.Fatal("debug entry should be filtered at info level")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("nonsense", true)
	defer cleanup()
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be enabled")
	}
}
