// Package logging wires the process-wide log sink: an append-only,
// date-named file under <root>/logs, mirrored to stderr with colorized
// level tags for interactive runs.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fieldguide/internal/resource"
)

// LevelEnv overrides the minimum emitted level
// (trace/debug/info/warn/error). Default: debug.
const LevelEnv = "FIELDGUIDE_LOG"

var (
	mu        sync.Mutex
	installed *zap.Logger
)

// Init installs the log sink for the remaining process lifetime. It
// creates <root>/logs if absent, opens today's YYYYMMDD.log for append
// (never truncating) and replaces the zap globals. The first successful
// call wins; later calls return the already-installed logger.
func Init(root resource.Root) (*zap.Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if installed != nil {
		return installed, nil
	}

	logDir := root.Logs()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(logDir, time.Now().Format("20060102")+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := zap.NewAtomicLevelAt(ParseLevel(os.Getenv(LevelEnv)))
	core := zapcore.NewTee(
		zapcore.NewCore(newLineEncoder(false), zapcore.Lock(file), level),
		zapcore.NewCore(newLineEncoder(true), zapcore.Lock(os.Stderr), level),
	)

	logger := zap.New(core)
	zap.ReplaceGlobals(logger)
	installed = logger
	return logger, nil
}

// ParseLevel maps the env setting to a zap level. Trace detail rides on
// debug (zap has no level below it); unknown or empty settings fall back
// to debug, matching the original default filter.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return zapcore.ErrorLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "info":
		return zapcore.InfoLevel
	case "trace", "debug":
		// zap has no level below debug; trace detail rides on it.
		return zapcore.DebugLevel
	default:
		return zapcore.DebugLevel
	}
}

// newLineEncoder builds the fixed line layout:
//
//	2006-01-02 15:04:05 [LEVEL] target - message
//
// The file sink stays plain text; only the stderr mirror colorizes the
// level tag.
func newLineEncoder(color bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		NameKey:          "name",
		MessageKey:       "msg",
		ConsoleSeparator: " ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05"))
		},
		EncodeLevel: plainBracketLevel,
		EncodeName: func(name string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(name + " -")
		},
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if color {
		cfg.EncodeLevel = colorBracketLevel
	}
	return zapcore.NewConsoleEncoder(cfg)
}

const (
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiReset  = "\x1b[0m"
)

func plainBracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

func colorBracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	color := ansiBlue
	switch {
	case l >= zapcore.ErrorLevel:
		color = ansiRed
	case l == zapcore.WarnLevel:
		color = ansiYellow
	case l == zapcore.InfoLevel:
		color = ansiGreen
	}
	enc.AppendString("[" + color + l.CapitalString() + ansiReset + "]")
}
