package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"arenasync/internal/core"
)

// LogLevel defines the severity level for log messages.
type LogLevel int

// Log level constants.
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelPrefixes = map[LogLevel]string{
	DEBUG: "[DEBUG] ",
	INFO:  "[INFO] ",
	WARN:  "[WARN] ",
	ERROR: "[ERROR] ",
	FATAL: "[FATAL] ",
}

// AppLogger is the application logger implementation.
type AppLogger struct {
	logger     *log.Logger
	debug      bool
	fileHandle *os.File
	mu         sync.RWMutex
}

// NewAppLoggerWithConfig creates a logger instance with configuration.
func NewAppLoggerWithConfig(output io.Writer, debugMode bool) *AppLogger {
	return &AppLogger{
		logger:     log.New(output, "", log.LstdFlags),
		debug:      debugMode,
		fileHandle: nil,
	}
}

func (l *AppLogger) output(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Printf(levelPrefixes[level]+format, args...)
}

// Debug logs a message at DEBUG level.
func (l *AppLogger) Debug(format string, args ...any) {
	if l != nil && l.debug {
		l.output(DEBUG, format, args...)
	}
}

// Info logs a message at INFO level.
func (l *AppLogger) Info(format string, args ...any) {
	if l != nil {
		l.output(INFO, format, args...)
	}
}

// Warn logs a message at WARN level.
func (l *AppLogger) Warn(format string, args ...any) {
	if l != nil {
		l.output(WARN, format, args...)
	}
}

// Error logs a message at ERROR level.
func (l *AppLogger) Error(format string, args ...any) {
	if l != nil {
		l.output(ERROR, format, args...)
	}
}

// Fatal logs a message at FATAL level and terminates the process.
func (l *AppLogger) Fatal(format string, args ...any) {
	if l != nil {
		l.output(FATAL, format, args...)
		_ = l.Close()
	} else {
		fmt.Fprintf(os.Stderr, levelPrefixes[FATAL]+format+"\n", args...)
	}
	os.Exit(1)
}

// Close safely closes log file handle.
func (l *AppLogger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileHandle != nil {
		err := l.fileHandle.Close()
		l.fileHandle = nil
		return err
	}
	return nil
}

// containsPathTraversal checks if path contains path traversal characters.
func containsPathTraversal(path string) bool {
	return strings.Contains(path, "..")
}

// createDebugFileOutput creates debug file output, falls back to stderr on failure.
func createDebugFileOutput() (io.Writer, *os.File) {
	debugFile := os.Getenv("DEBUG_FILE")
	if debugFile == "" {
		return os.Stderr, nil
	}

	if len(debugFile) > core.MaxDebugFilePathLength {
		fmt.Fprintln(os.Stderr, "[WARN] DEBUG_FILE path too long, falling back to stderr")
		return os.Stderr, nil
	}

	if containsPathTraversal(debugFile) {
		fmt.Fprintln(os.Stderr, "[WARN] DEBUG_FILE contains path traversal characters, falling back to stderr")
		return os.Stderr, nil
	}

	//nolint:gosec // G304: debugFile from env var, validated by containsPathTraversal
	file, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, core.FilePermissionReadWrite)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to open DEBUG_FILE '%s': %v, falling back to stderr\n", debugFile, err)
		return os.Stderr, nil
	}

	return file, file
}

// IsDebug returns whether debug logging is enabled.
func IsDebug() bool {
	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// CreateLogger creates a logger instance (for dependency injection).
func CreateLogger() core.Logger {
	output, fileHandle := createDebugFileOutput()

	return &AppLogger{
		logger:     log.New(output, "", log.LstdFlags),
		debug:      IsDebug(),
		fileHandle: fileHandle,
	}
}
