package logging

import "sync"

// CaptureLogger records every log call so tests can assert on diagnostics.
// Loggers derived via With share the same entry list.
type CaptureLogger struct {
	base  Fields
	state *captureState
}

type captureState struct {
	mu      sync.Mutex
	entries []Entry
}

// Entry is a single recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Err    error
	Fields Fields
}

// NewCaptureLogger returns a logger that accumulates entries in memory. It is
// safe for concurrent use.
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{state: &captureState{}}
}

func (l *CaptureLogger) With(fields Fields) Logger {
	return &CaptureLogger{base: mergeFields(l.base, fields), state: l.state}
}

func (l *CaptureLogger) Debug(msg string, fields Fields) { l.record("debug", msg, nil, fields) }
func (l *CaptureLogger) Info(msg string, fields Fields)  { l.record("info", msg, nil, fields) }
func (l *CaptureLogger) Warn(msg string, fields Fields)  { l.record("warn", msg, nil, fields) }
func (l *CaptureLogger) Error(msg string, err error, fields Fields) {
	l.record("error", msg, err, fields)
}

func (l *CaptureLogger) record(level, msg string, err error, fields Fields) {
	entry := Entry{Level: level, Msg: msg, Err: err, Fields: mergeFields(l.base, fields)}

	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.entries = append(l.state.entries, entry)
}

// Entries returns a copy of the recorded log calls.
func (l *CaptureLogger) Entries() []Entry {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	out := make([]Entry, len(l.state.entries))
	copy(out, l.state.entries)
	return out
}

// WarnCount returns how many warn-level entries were recorded.
func (l *CaptureLogger) WarnCount() int {
	n := 0
	for _, e := range l.Entries() {
		if e.Level == "warn" {
			n++
		}
	}
	return n
}

func mergeFields(base, extra Fields) Fields {
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
