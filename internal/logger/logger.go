// Package logger provides structured logging for ohcrab
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	globalLogger *Logger
	once         sync.Once
	mu           sync.Mutex
)

// Level represents logging level
type Level int

const (
	DebugLevel Level = Level(log.DebugLevel)
	InfoLevel  Level = Level(log.InfoLevel)
	WarnLevel  Level = Level(log.WarnLevel)
	ErrorLevel Level = Level(log.ErrorLevel)
	FatalLevel Level = Level(log.FatalLevel)
)

// Logger wraps charmbracelet/log
type Logger struct {
	logger *log.Logger
	level  Level
	writer io.Writer
}

// Config holds logger configuration
type Config struct {
	Level      string
	File       string
	MaxSize    int // MB
	MaxBackups int
	// Console writes to stderr. Stdout carries suggestions and must stay clean.
	Console bool
	// Writer overrides the console destination; used by tests.
	Writer io.Writer
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		MaxSize:    10,
		MaxBackups: 3,
		Console:    true,
	}
}

// Initialize initializes the global logger. Only the first call has effect.
func Initialize(cfg Config) error {
	var initErr error
	once.Do(func() {
		var l *Logger
		l, initErr = New(cfg)
		if initErr == nil {
			mu.Lock()
			globalLogger = l
			mu.Unlock()
		}
	})
	return initErr
}

// New builds a standalone logger.
func New(cfg Config) (*Logger, error) {
	level := ParseLevel(cfg.Level)

	var writers []io.Writer
	if cfg.Console {
		if cfg.Writer != nil {
			writers = append(writers, cfg.Writer)
		} else {
			writers = append(writers, os.Stderr)
		}
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		fw, err := newRotatingWriter(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		writers = append(writers, fw)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}

	l := log.NewWithOptions(writer, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	return &Logger{logger: l, level: level, writer: writer}, nil
}

// Get returns the global logger instance
func Get() *Logger {
	mu.Lock()
	l := globalLogger
	mu.Unlock()
	if l == nil {
		_ = Initialize(DefaultConfig())
		mu.Lock()
		l = globalLogger
		mu.Unlock()
	}
	return l
}

// Debug logs debug message
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.logger.Debug(msg, keyvals...)
}

// Info logs info message
func (l *Logger) Info(msg string, keyvals ...any) {
	l.logger.Info(msg, keyvals...)
}

// Warn logs warning message
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.logger.Warn(msg, keyvals...)
}

// Error logs error message
func (l *Logger) Error(msg string, keyvals ...any) {
	l.logger.Error(msg, keyvals...)
}

// With returns logger with prefix
func (l *Logger) With(prefix string) *Logger {
	return &Logger{
		logger: l.logger.WithPrefix(prefix),
		level:  l.level,
		writer: l.writer,
	}
}

// SetLevel sets logging level
func (l *Logger) SetLevel(level Level) {
	l.level = level
	l.logger.SetLevel(log.Level(level))
}

// Level returns the current level
func (l *Logger) Level() Level {
	return l.level
}

// Debug logs debug message using global logger
func Debug(msg string, keyvals ...any) {
	Get().Debug(msg, keyvals...)
}

// Info logs info message using global logger
func Info(msg string, keyvals ...any) {
	Get().Info(msg, keyvals...)
}

// Warn logs warning message using global logger
func Warn(msg string, keyvals ...any) {
	Get().Warn(msg, keyvals...)
}

// Error logs error message using global logger
func Error(msg string, keyvals ...any) {
	Get().Error(msg, keyvals...)
}

// With returns global logger with prefix
func With(prefix string) *Logger {
	return Get().With(prefix)
}

// ParseLevel parses level string to Level
func ParseLevel(level string) Level {
	switch level {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return WarnLevel
	}
}

// rotatingWriter handles log rotation
type rotatingWriter struct {
	filename   string
	maxSize    int
	maxBackups int
	file       *os.File
	size       int64
}

func newRotatingWriter(cfg Config) (*rotatingWriter, error) {
	rw := &rotatingWriter{
		filename:   cfg.File,
		maxSize:    cfg.MaxSize,
		maxBackups: cfg.MaxBackups,
	}
	if rw.maxSize <= 0 {
		rw.maxSize = 10
	}
	if err := rw.open(); err != nil {
		return nil, err
	}
	return rw, nil
}

func (rw *rotatingWriter) open() error {
	if info, err := os.Stat(rw.filename); err == nil {
		rw.size = info.Size()
	} else {
		rw.size = 0
	}

	file, err := os.OpenFile(rw.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	rw.file = file
	return nil
}

// Write implements io.Writer
func (rw *rotatingWriter) Write(p []byte) (n int, err error) {
	if rw.size+int64(len(p)) > int64(rw.maxSize)*1024*1024 {
		if err := rw.rotate(); err != nil {
			return 0, err
		}
	}
	n, err = rw.file.Write(p)
	rw.size += int64(n)
	return n, err
}

func (rw *rotatingWriter) rotate() error {
	if rw.file != nil {
		rw.file.Close()
	}

	_ = os.Remove(fmt.Sprintf("%s.%d", rw.filename, rw.maxBackups))
	for i := rw.maxBackups - 1; i > 0; i-- {
		_ = os.Rename(fmt.Sprintf("%s.%d", rw.filename, i), fmt.Sprintf("%s.%d", rw.filename, i+1))
	}
	if rw.maxBackups > 0 {
		_ = os.Rename(rw.filename, rw.filename+".1")
	} else {
		_ = os.Remove(rw.filename)
	}

	return rw.open()
}

// Close closes the file
func (rw *rotatingWriter) Close() error {
	if rw.file != nil {
		return rw.file.Close()
	}
	return nil
}
