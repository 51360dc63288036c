package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.level.String(); result != tt.expected {
				t.Errorf("Expected %s, got: %s", tt.expected, result)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"trace", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ParseLevel(tt.input); result != tt.expected {
				t.Errorf("Expected %v, got: %v", tt.expected, result)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"debug", "Info", "WARN", "warning", "error", "trace"} {
		if !ValidLevel(s) {
			t.Errorf("Expected %q to be a valid level", s)
		}
	}
	for _, s := range []string{"", "verbose", "fatal"} {
		if ValidLevel(s) {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"console", FormatConsole},
		{"text", FormatConsole},
		{"JSON", FormatJSON},
		{"auto", FormatAuto},
		{"", FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ParseFormat(tt.input); result != tt.expected {
				t.Errorf("Expected %v, got: %v", tt.expected, result)
			}
		})
	}
}

func TestNewWithOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithOutput(DebugLevel, buf)

	if logger.level != DebugLevel {
		t.Errorf("Expected level DebugLevel, got: %v", logger.level)
	}
	if logger.output != buf {
		t.Error("Expected output to be custom buffer")
	}
	if logger.Format() != FormatConsole {
		t.Errorf("Expected console format, got: %v", logger.Format())
	}
}

func TestNewWithOptions_AutoOnBufferIsJSON(t *testing.T) {
	logger := NewWithOptions(InfoLevel, FormatAuto, &bytes.Buffer{})

	if logger.Format() != FormatJSON {
		t.Errorf("Expected auto format to resolve to JSON for a non-terminal, got: %v", logger.Format())
	}
}

func TestSetLevel(t *testing.T) {
	logger := NewWithOutput(InfoLevel, &bytes.Buffer{})
	logger.SetLevel(ErrorLevel)

	if logger.level != ErrorLevel {
		t.Errorf("Expected level ErrorLevel, got: %v", logger.level)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithOutput(WarnLevel, buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should not appear at WARN level")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should not appear at WARN level")
	}
	if !strings.Contains(output, "WARN warn message") {
		t.Errorf("Warn message should appear at WARN level, got: %s", output)
	}
	if !strings.Contains(output, "ERROR error message") {
		t.Errorf("Error message should appear at WARN level, got: %s", output)
	}
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithOutput(InfoLevel, buf)

	logger.Info("test message",
		String("key1", "value1"),
		Int("key2", 42),
		Int64("key3", 1<<40),
		Bool("key4", true),
	)

	output := buf.String()
	for _, want := range []string{"test message", "key1=value1", "key2=42", "key3=1099511627776", "key4=true"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	parent := NewWithOutput(InfoLevel, buf)
	child := parent.With(String("session", "abc123"))

	child.Info("from child", String("role", "server"))
	parent.Info("from parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "session=abc123 role=server") {
		t.Errorf("Expected child fields before call fields, got: %s", lines[0])
	}
	if strings.Contains(lines[1], "session=") {
		t.Errorf("Parent must not inherit child fields, got: %s", lines[1])
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithOptions(DebugLevel, FormatJSON, buf)

	logger.With(String("session", "s1")).Debug("chunk", Int("bytes", 5))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("Expected level DEBUG, got: %v", entry["level"])
	}
	if entry["message"] != "chunk" {
		t.Errorf("Expected message chunk, got: %v", entry["message"])
	}
	if entry["session"] != "s1" {
		t.Errorf("Expected session field, got: %v", entry["session"])
	}
	if entry["bytes"] != float64(5) {
		t.Errorf("Expected bytes 5, got: %v", entry["bytes"])
	}
}

func TestLogger_OutputFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithOutput(InfoLevel, buf)

	logger.Info("test message", String("key", "value"))

	// timestamp level message key=value
	parts := strings.Fields(buf.String())
	if len(parts) < 4 {
		t.Fatalf("Expected at least 4 parts in output, got: %d", len(parts))
	}
	if len(parts[0]) < 10 {
		t.Errorf("Expected timestamp in first part, got: %s", parts[0])
	}
	if parts[1] != "INFO" {
		t.Errorf("Expected level INFO, got: %s", parts[1])
	}
	if parts[2] != "test" {
		t.Errorf("Expected message part 'test', got: %s", parts[2])
	}
}

func TestLogger_ConcurrentWritesDoNotInterleave(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithOutput(InfoLevel, buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.With(Int("worker", n)).Info("tick", Int("j", j))
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 400 {
		t.Fatalf("Expected 400 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if strings.Count(line, "INFO") != 1 {
			t.Fatalf("Interleaved line: %q", line)
		}
	}
}

func TestNop(t *testing.T) {
	var sink Sink = Nop()
	sink.Debug("ignored")
	sink.Info("ignored")
	sink.Warn("ignored")
	sink.Error("ignored", Error(errors.New("boom")))
}

func TestLoggerImplementsSink(t *testing.T) {
	var _ Sink = NewWithOutput(InfoLevel, &bytes.Buffer{})
}

func TestField_Error(t *testing.T) {
	field := Error(errors.New("test error"))
	if field.Key != "error" {
		t.Errorf("Expected key 'error', got: %s", field.Key)
	}
	if field.Value != "test error" {
		t.Errorf("Expected value 'test error', got: %v", field.Value)
	}

	if nilField := Error(nil); nilField.Value != "<nil>" {
		t.Errorf("Expected <nil> for nil error, got: %v", nilField.Value)
	}
}

func TestField_Any(t *testing.T) {
	type customStruct struct {
		Name string
		Age  int
	}

	value := customStruct{Name: "test", Age: 30}
	field := Any("custom", value)

	if field.Key != "custom" {
		t.Errorf("Expected key 'custom', got: %s", field.Key)
	}
	if field.Value != value {
		t.Errorf("Expected value %v, got: %v", value, field.Value)
	}
}
