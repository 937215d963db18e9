package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fieldguide/internal/resource"
)

var lineRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \[[A-Z]+\] [\w.]+ - .+$`)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"error", zapcore.ErrorLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"info", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"trace", zapcore.DebugLevel},
		{"", zapcore.DebugLevel},
		{"bogus", zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLineEncoder_Format(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(newLineEncoder(false), zapcore.AddSync(&buf), zapcore.DebugLevel)
	logger := zap.New(core).Named("app")

	logger.Info("loading data file")
	logger.Debug("column map built")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !lineRe.MatchString(line) {
			t.Errorf("line %q does not match expected layout", line)
		}
	}
	if !strings.HasSuffix(lines[0], "[INFO] app - loading data file") {
		t.Errorf("unexpected info line: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[DEBUG] app - column map built") {
		t.Errorf("unexpected debug line: %q", lines[1])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("plain encoder must not emit color codes")
	}
}

func TestLineEncoder_ColorizedLevels(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(newLineEncoder(true), zapcore.AddSync(&buf), zapcore.DebugLevel)
	logger := zap.New(core).Named("app")

	logger.Error("boom")
	logger.Warn("careful")
	logger.Info("fine")
	logger.Debug("detail")

	out := buf.String()
	for _, want := range []string{ansiRed, ansiYellow, ansiGreen, ansiBlue} {
		if !strings.Contains(out, want) {
			t.Errorf("expected color %q in output", want)
		}
	}
}

func TestInit(t *testing.T) {
	root := resource.Root(t.TempDir())

	// Seed today's file with a line from an "earlier run": the sink
	// must append, never truncate.
	if err := os.MkdirAll(root.Logs(), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root.Logs(), time.Now().Format("20060102")+".log")
	if err := os.WriteFile(path, []byte("earlier run line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	logger.Named("app").Info("hello world")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "earlier run line\n") {
		t.Errorf("earlier content lost: %q", content)
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	last := lines[len(lines)-1]
	if !lineRe.MatchString(last) {
		t.Errorf("appended line %q does not match layout", last)
	}
	if !strings.HasSuffix(last, "[INFO] app - hello world") {
		t.Errorf("unexpected appended line: %q", last)
	}
	if strings.Contains(content, "\x1b[") {
		t.Error("file sink must stay plain text")
	}

	// A second call does not reinstall: the process-wide sink is
	// one-time.
	again, err := Init(resource.Root(t.TempDir()))
	if err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if again != logger {
		t.Error("second Init must return the installed logger")
	}
}
