package mocks

import (
	"fmt"
	"sync"

	"github.com/user/framestrip/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that records formatted
// messages per level.
type Logger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	prefix  string
}

// LogEntry is one recorded message.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

// NewLogger creates a new recording logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (m *Logger) record(level ports.LogLevel, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = append(*m.entries, LogEntry{Level: level, Component: m.prefix, Message: fmt.Sprintf(msg, args...)})
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record(ports.LevelDebug, msg, args...) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record(ports.LevelInfo, msg, args...) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record(ports.LevelWarn, msg, args...) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record(ports.LevelError, msg, args...) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{mu: m.mu, entries: m.entries, prefix: component}
}

// Entries returns all recorded messages, including those of component loggers.
func (m *Logger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(*m.entries))
	copy(out, *m.entries)
	return out
}

// Messages returns the recorded messages at the given level.
func (m *Logger) Messages(level ports.LogLevel) []string {
	var out []string
	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)

// Progress is a mock implementation of ports.Progress.
type Progress struct {
	Total       int
	Description string
	Count       int
	Finished    bool
}

func (m *Progress) Start(total int, description string) {
	m.Total = total
	m.Description = description
	m.Count = 0
	m.Finished = false
}

func (m *Progress) Add(n int) { m.Count += n }
func (m *Progress) Finish()   { m.Finished = true }

var _ ports.Progress = (*Progress)(nil)
