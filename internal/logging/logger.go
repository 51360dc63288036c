package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Format represents the output format for logs
type Format int

const (
	// FormatConsole is human-readable key=value output
	FormatConsole Format = iota
	// FormatJSON is one JSON object per line
	FormatJSON
	// FormatAuto picks console on a terminal and JSON otherwise
	FormatAuto
)

// ParseFormat converts a string to a Format. Unknown values map to FormatAuto.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "console", "text":
		return FormatConsole
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// Level represents a logging level
type Level int

const (
	// DebugLevel is for debug messages
	DebugLevel Level = iota
	// InfoLevel is for informational messages
	InfoLevel
	// WarnLevel is for warning messages
	WarnLevel
	// ErrorLevel is for error messages
	ErrorLevel
)

// String returns the string representation of a Level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug", "trace":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// ValidLevel reports whether s names a known level
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "trace", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Sink is the diagnostic interface handed to components that report
// progress or failures. *Logger implements it.
type Sink interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Logger provides structured logging capabilities. A Logger is safe for
// concurrent use; children created by With share the parent's writer lock.
type Logger struct {
	level  Level
	format Format
	output io.Writer
	fields []Field
	mu     *sync.Mutex
}

// NewWithOutput creates a new Logger with the specified level and output writer
func NewWithOutput(level Level, output io.Writer) *Logger {
	return NewWithOptions(level, FormatConsole, output)
}

// NewWithOptions creates a Logger with explicit level, format and writer
func NewWithOptions(level Level, format Format, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	if format == FormatAuto {
		format = resolveAuto(output)
	}
	return &Logger{
		level:  level,
		format: format,
		output: output,
		mu:     &sync.Mutex{},
	}
}

// resolveAuto chooses console output for terminals and JSON for everything else
func resolveAuto(output io.Writer) Format {
	if f, ok := output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatConsole
	}
	return FormatJSON
}

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Format returns the resolved output format
func (l *Logger) Format() Format {
	return l.format
}

// With returns a child logger that adds fields to every entry
func (l *Logger) With(fields ...Field) *Logger {
	child := *l
	child.fields = make([]Field, 0, len(l.fields)+len(fields))
	child.fields = append(child.fields, l.fields...)
	child.fields = append(child.fields, fields...)
	return &child
}

// Debug logs a debug message with optional fields
func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an informational message with optional fields
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning message with optional fields
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error message with optional fields
func (l *Logger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

func (l *Logger) log(level Level, msg string, fields ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	all := fields
	if len(l.fields) > 0 {
		all = append(append([]Field{}, l.fields...), fields...)
	}

	if l.format == FormatJSON {
		l.logJSON(level, msg, all)
	} else {
		l.logConsole(level, msg, all)
	}
}

func (l *Logger) logConsole(level Level, msg string, fields []Field) {
	var line strings.Builder
	line.WriteString(time.Now().UTC().Format(time.RFC3339))
	line.WriteString(" ")
	line.WriteString(level.String())
	line.WriteString(" ")
	line.WriteString(msg)

	for _, field := range fields {
		line.WriteString(" ")
		line.WriteString(field.Key)
		line.WriteString("=")
		line.WriteString(fmt.Sprintf("%v", field.Value))
	}
	line.WriteString("\n")

	_, _ = io.WriteString(l.output, line.String())
}

func (l *Logger) logJSON(level Level, msg string, fields []Field) {
	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level.String(),
		"message":   msg,
	}
	for _, field := range fields {
		entry[field.Key] = field.Value
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		l.logConsole(level, msg, fields)
		return
	}

	_, _ = fmt.Fprintf(l.output, "%s\n", jsonBytes)
}

type nopSink struct{}

func (nopSink) Debug(string, ...Field) {}
func (nopSink) Info(string, ...Field)  {}
func (nopSink) Warn(string, ...Field)  {}
func (nopSink) Error(string, ...Field) {}

// Nop returns a Sink that discards everything
func Nop() Sink {
	return nopSink{}
}

// Field represents a structured logging field
type Field struct {
	Key   string
	Value any
}

// String creates a Field with a string value
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates a Field with an integer value
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates a Field with a 64-bit integer value
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a Field with a boolean value
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Error creates a Field with an error value. A nil error yields "<nil>".
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a Field with any value
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}
