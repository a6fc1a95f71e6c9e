package schedule

import (
	"fmt"
	"log"
)

// Field represents a structured logging field
type Field struct {
	Key   string
	Value any
}

// Logger defines the interface for logging within the calculator
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	With(fields ...Field) Logger
}

// defaultLogger writes through the standard log package
type defaultLogger struct {
	fields []Field
}

// NewDefaultLogger creates a console logger writing "[INFO] msg k=v" lines
func NewDefaultLogger() Logger {
	return &defaultLogger{}
}

func (l *defaultLogger) Info(msg string, fields ...Field) {
	log.Println(format("[INFO] "+msg, l.fields, fields))
}

func (l *defaultLogger) Error(msg string, err error, fields ...Field) {
	log.Println(format(fmt.Sprintf("[ERROR] %s: %v", msg, err), l.fields, fields))
}

func (l *defaultLogger) With(fields ...Field) Logger {
	combined := make([]Field, 0, len(l.fields)+len(fields))
	combined = append(combined, l.fields...)
	combined = append(combined, fields...)
	return &defaultLogger{fields: combined}
}

func format(msg string, base, extra []Field) string {
	for _, f := range base {
		msg += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	for _, f := range extra {
		msg += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	return msg
}

// nopLogger discards everything. It is the calculator's default.
type nopLogger struct{}

func (nopLogger) Info(string, ...Field) {}
func (nopLogger) Error(string, error, ...Field) {}
func (n nopLogger) With(...Field) Logger { return n }
