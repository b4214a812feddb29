package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "tav.log"

// LevelTrace sits below debug and is only emitted when tracing is enabled.
const LevelTrace = slog.Level(-8)

// Options describes where and how much to log.
type Options struct {
	File  string
	Level string // debug, info, warn, error
	Trace bool
}

var (
	mu           sync.Mutex
	logPath      = defaultPath()
	baseLevel    = slog.LevelError
	traceEnabled bool
	level        = new(slog.LevelVar)
	writer       *lumberjack.Logger
	logger       *slog.Logger
)

func init() {
	level.Set(baseLevel)
}

// defaultPath places the log in the user cache directory, or the working
// directory when that cannot be determined.
func defaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return defaultLogFile
	}
	return filepath.Join(dir, "tav", defaultLogFile)
}

// ParseLevel maps a level name onto slog. Empty means error.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return slog.LevelError, fmt.Errorf("unknown log level %q", name)
	}
}

// Setup applies opts. Empty File falls back to the default path and missing
// directories are created; the file itself is opened lazily on first write.
func Setup(opts Options) error {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	configureLocked(opts.File)
	baseLevel = lvl
	traceEnabled = opts.Trace
	applyLevelLocked()
	return nil
}

func configureLocked(path string) {
	closeLocked()
	if strings.TrimSpace(path) == "" {
		path = defaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		path = defaultLogFile
	}
	logPath = path
}

// Path reports the active log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

func applyLevelLocked() {
	if traceEnabled {
		level.Set(LevelTrace)
		return
	}
	level.Set(baseLevel)
}

func writerLocked() *lumberjack.Logger {
	if writer == nil {
		writer = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    5,
			MaxBackups: 3,
		}
	}
	return writer
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		var w io.Writer = writerLocked()
		logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: levelNames,
		}))
	}
	return logger
}

func levelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

// Close flushes and releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if writer != nil {
		_ = writer.Close()
	}
	writer = nil
	logger = nil
}

// Error records err at error level.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error(err.Error())
}

func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Trace appends a structured entry when tracing is enabled.
func Trace(event string, payload map[string]any) {
	if !TraceEnabled() {
		return
	}
	args := make([]any, 0, 2)
	if len(payload) > 0 {
		args = append(args, slog.Any("payload", payload))
	}
	current().Log(context.Background(), LevelTrace, event, args...)
}
