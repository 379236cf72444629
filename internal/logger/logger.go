// Package logger is the small logging seam shared by tessera-gen packages.
// Builders and the Tessera client take a Logger so tests can capture what
// they report with a BufferLogger.
package logger

import (
	"fmt"
	"log"
	"os"
	"slices"
	"sync/atomic"
)

// DebugEnv turns on debug output when set to any non-empty value.
const DebugEnv = "TESSERA_GEN_DEBUG"

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

var verbose atomic.Bool

// SetVerbose forces debug output on or off for env loggers. Set by --verbose.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// DebugEnabled reports whether env loggers print debug messages.
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv(DebugEnv) != ""
}

// envLogger writes through the standard log package.
type envLogger struct {
	prefix string
}

// NewEnvLogger returns a Logger writing to the standard logger, each line
// starting with prefix (e.g. "[build]"). Debug lines need DebugEnabled.
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) printf(tag, format string, args []interface{}) {
	log.Print(l.prefix + " " + tag + fmt.Sprintf(format, args...))
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if DebugEnabled() {
		l.printf("", format, args)
	}
}

func (l *envLogger) Info(format string, args ...interface{})  { l.printf("", format, args) }
func (l *envLogger) Warn(format string, args ...interface{})  { l.printf("WARN: ", format, args) }
func (l *envLogger) Error(format string, args ...interface{}) { l.printf("ERROR: ", format, args) }

type noopLogger struct{}

// Noop returns a Logger that drops everything.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// LogMessage is one message held by a BufferLogger.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger keeps every message in memory, in order.
type BufferLogger struct {
	Messages []LogMessage
}

func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: []LogMessage{}}
}

func (l *BufferLogger) add(level, format string, args []interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args) }

// HasLevel reports whether a message was logged at level.
func (l *BufferLogger) HasLevel(level string) bool {
	return slices.ContainsFunc(l.Messages, func(m LogMessage) bool { return m.Level == level })
}

func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}

var defaultLogger = NewEnvLogger("[tessera-gen]")

// Default returns the process-wide logger.
func Default() Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l Logger) {
	defaultLogger = l
}

// OrDefault returns l, or Default() when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return defaultLogger
	}
	return l
}
