package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color codes
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	// Standard colors
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m"

	// Bright colors
	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
	BrightWhite   = "\033[97m"
)

// ColoredLogger wraps zap.Logger with colored output
type ColoredLogger struct {
	*zap.Logger
	file   *os.File
	filter Filter
}

// Component represents different parts of the node for color coding and filtering
type Component string

const (
	ComponentChain   Component = "CHAIN"
	ComponentNetwork Component = "NETWORK"
	ComponentRPC     Component = "RPC"
	ComponentSync    Component = "SYNC"
	ComponentPool    Component = "POOL"
	ComponentMiner   Component = "MINER"
	ComponentConfig  Component = "CONFIG"
	ComponentGeneral Component = "GENERAL"
)

// Target is the logger name a filter refers to, e.g. "chain" for ComponentChain.
func (c Component) Target() string {
	return strings.ToLower(string(c))
}

// getComponentColor returns the color for a specific component
func getComponentColor(component Component) string {
	switch component {
	case ComponentChain:
		return BrightBlue
	case ComponentNetwork:
		return BrightCyan
	case ComponentRPC:
		return BrightGreen
	case ComponentSync:
		return BrightMagenta
	case ComponentPool:
		return BrightYellow
	case ComponentMiner:
		return Green
	case ComponentConfig:
		return Cyan
	case ComponentGeneral:
		return Yellow
	default:
		return White
	}
}

// getLevelColor returns the color for a log level
func getLevelColor(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return Gray
	case zapcore.InfoLevel:
		return BrightWhite
	case zapcore.WarnLevel:
		return BrightYellow
	case zapcore.ErrorLevel:
		return BrightRed
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return Red
	default:
		return White
	}
}

var levelLetters = map[zapcore.Level]string{
	zapcore.DebugLevel: "D",
	zapcore.InfoLevel:  "I",
	zapcore.WarnLevel:  "W",
	zapcore.ErrorLevel: "E",
}

func paint(enableColors bool, color, s string) string {
	if !enableColors {
		return s
	}
	return color + s + Reset
}

// coloredConsoleEncoder renders "HH:MM:SS L name file:line msg fields".
func coloredConsoleEncoder(enableColors bool) zapcore.Encoder {
	config := zap.NewDevelopmentEncoderConfig()

	config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(paint(enableColors, Dim, t.Format("15:04:05")))
	}

	config.EncodeLevel = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		letter, ok := levelLetters[level]
		if !ok {
			letter = "?"
		}
		enc.AppendString(paint(enableColors, getLevelColor(level)+Bold, letter))
	}

	config.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		file := filepath.Base(caller.File)
		file = strings.TrimSuffix(file, ".go")
		enc.AppendString(paint(enableColors, Dim, fmt.Sprintf("%s:%d", file, caller.Line)))
	}

	config.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		root, _, _ := strings.Cut(name, ".")
		tag := "[" + strings.ToUpper(name) + "]"
		enc.AppendString(paint(enableColors, getComponentColor(Component(strings.ToUpper(root))), tag))
	}

	return zapcore.NewConsoleEncoder(config)
}

// Options configures New. It mirrors the logger section of the node configuration.
type Options struct {
	File   string    // Empty disables the file sink
	Filter string    // e.g. "info,chain=debug"
	Color  bool      // Colors on the console sink; the file sink is never colored
	Stdout io.Writer // Console sink; defaults to os.Stdout
}

// New creates a logger writing to the console and, when configured, to a file.
func New(opts Options) (*ColoredLogger, error) {
	filter, err := ParseFilter(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid log filter: %w", err)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	level := filter.minLevel()
	cores := []zapcore.Core{
		zapcore.NewCore(coloredConsoleEncoder(opts.Color), zapcore.AddSync(stdout), level),
	}

	var file *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory for %s: %w", opts.File, err)
		}
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		cores = append(cores, zapcore.NewCore(coloredConsoleEncoder(false), zapcore.AddSync(file), level))
	}

	core := &filterCore{Core: zapcore.NewTee(cores...), filter: filter}
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &ColoredLogger{
		Logger: logger,
		file:   file,
		filter: filter,
	}, nil
}

// Filter returns the parsed logger.filter in effect.
func (l *ColoredLogger) Filter() Filter {
	return l.filter
}

// NewNop returns a logger that discards everything.
func NewNop() *ColoredLogger {
	return &ColoredLogger{Logger: zap.NewNop()}
}

// Close flushes buffered entries and closes the log file, if any.
func (l *ColoredLogger) Close() error {
	_ = l.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Component-specific logging methods. Entries are emitted under the component's
// target name so per-target filters apply and the encoder renders the [COMPONENT] tag.
func (l *ColoredLogger) ComponentInfo(component Component, msg string, fields ...zap.Field) {
	l.Named(component.Target()).Info(msg, fields...)
}

func (l *ColoredLogger) ComponentWarn(component Component, msg string, fields ...zap.Field) {
	l.Named(component.Target()).Warn(msg, fields...)
}

func (l *ColoredLogger) ComponentError(component Component, msg string, fields ...zap.Field) {
	l.Named(component.Target()).Error(msg, fields...)
}

func (l *ColoredLogger) ComponentDebug(component Component, msg string, fields ...zap.Field) {
	l.Named(component.Target()).Debug(msg, fields...)
}
